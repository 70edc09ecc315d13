package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"roots-catalog/internal/admin"
)

func productsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List, create, edit and delete products",
	}
	cmd.AddCommand(
		productsListCmd(s),
		productsGetCmd(s),
		productsCreateCmd(s),
		productsDeleteCmd(s),
		productsEditCmd(s),
	)
	return cmd
}

// products list: one page of the product table.
func productsListCmd(s *session) *cobra.Command {
	var (
		page    int
		keyword string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "csv" {
				return fmt.Errorf("unknown output format %q (use table or csv)", output)
			}

			lister := admin.NewProductLister(s.api, s.logger)
			lister.SetKeyword(keyword)
			if err := lister.Open(cmd.Context(), page); err != nil {
				return err
			}

			state := lister.State()
			out := cmd.OutOrStdout()
			if output == "csv" {
				return admin.WriteCSV(out, state.Products)
			}

			if err := admin.WriteTable(out, state.Products); err != nil {
				return err
			}
			return admin.WritePagination(out, lister.Pagination())
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&keyword, "keyword", "", "only products whose name contains keyword")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or csv")
	return cmd
}

// products get <id>: product details as JSON.
func productsGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := admin.NewProductEditor(s.api, s.logger)
			if err := editor.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), editor.State().Product)
		},
	}
}

// products create: a sample product to be edited next.
func productsCreateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a sample product and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := admin.NewProductLister(s.api, s.logger)
			id, err := lister.Create(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			fmt.Fprintf(cmd.ErrOrStderr(), "edit it with: rootsctl products edit %s --name ...\n", id)
			return nil
		},
	}
}

// products delete <id>: asks for confirmation unless --yes.
func productsDeleteCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := func() bool {
				if yes {
					return true
				}
				fmt.Fprint(cmd.ErrOrStderr(), "Are you sure? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			}

			lister := admin.NewProductLister(s.api, s.logger)
			deleted, err := lister.Delete(cmd.Context(), args[0], confirm)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// products edit <id>: load, change the given fields, optionally upload an
// image, then submit the whole form.
func productsEditCmd(s *session) *cobra.Command {
	var (
		name, image, description, plantType, flower, price, stock string
		uploadPath                                                string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			editor := admin.NewProductEditor(s.api, s.logger)
			if err := editor.Load(ctx, args[0]); err != nil {
				return err
			}

			err := editor.Edit(func(f *admin.ProductForm) error {
				if flags.Changed("name") {
					f.Name = name
				}
				if flags.Changed("image") {
					f.Image = image
				}
				if flags.Changed("description") {
					f.Description = description
				}
				if flags.Changed("flower") {
					f.Flower = flower
				}
				if flags.Changed("type") {
					if err := f.SetType(plantType); err != nil {
						return err
					}
				}
				if flags.Changed("price") {
					if err := f.SetPrice(price); err != nil {
						return err
					}
				}
				if flags.Changed("stock") {
					if err := f.SetCountInStock(stock); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			if uploadPath != "" {
				file, err := os.Open(uploadPath)
				if err != nil {
					return err
				}
				err = editor.UploadImage(ctx, filepath.Base(uploadPath), file)
				file.Close()
				if err != nil {
					return fmt.Errorf("upload %s: %w", uploadPath, err)
				}
			}

			if err := editor.Submit(ctx); err != nil {
				return err
			}
			defer editor.Done()

			return printJSON(cmd.OutOrStdout(), editor.State().Product)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "product name")
	f.StringVar(&image, "image", "", "image path or URL")
	f.StringVar(&uploadPath, "upload", "", "upload this image file and use it as the product image")
	f.StringVar(&description, "description", "", "description")
	f.StringVar(&plantType, "type", "", "plant type (Annual, Bulb, Fruit, Herb, Houseplant, Perennial, Rose, Shrub, Tree, Vegetable, Vine, Water Plant)")
	f.StringVar(&flower, "flower", "", "flower")
	f.StringVar(&price, "price", "", "price")
	f.StringVar(&stock, "stock", "", "count in stock")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
