package platform

import (
	"context"
	"fmt"

	"skucraft/pkg/models"
)

const productsPageQuery = `
query ProductsPage($cursor: String) {
  products(first: 50, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      title
      vendor
      productType
      images(first: 1) {
        nodes {
          id
          url
          altText
        }
      }
      variants(first: 50) {
        nodes {
          id
          title
          sku
          selectedOptions {
            name
            value
          }
        }
      }
    }
  }
}`

const productsByIDQuery = `
query ProductsByID($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      vendor
      productType
      images(first: 1) {
        nodes {
          id
          url
          altText
        }
      }
      variants(first: 50) {
        nodes {
          id
          title
          sku
          selectedOptions {
            name
            value
          }
        }
      }
    }
  }
}`

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`
	Images      struct {
		Nodes []struct {
			ID      string `json:"id"`
			URL     string `json:"url"`
			AltText string `json:"altText"`
		} `json:"nodes"`
	} `json:"images"`
	Variants struct {
		Nodes []struct {
			ID              string  `json:"id"`
			Title           string  `json:"title"`
			SKU             *string `json:"sku"`
			SelectedOptions []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"selectedOptions"`
		} `json:"nodes"`
	} `json:"variants"`
}

// ListAllVariants pages through the whole catalog and returns the flattened
// variant list in catalog order.
func (c *Client) ListAllVariants(ctx context.Context) ([]models.ProductVariant, error) {
	var all []models.ProductVariant
	var cursor *string

	for {
		var page struct {
			Products struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Nodes []productNode `json:"nodes"`
			} `json:"products"`
		}

		variables := map[string]interface{}{}
		if cursor != nil {
			variables["cursor"] = *cursor
		}
		if err := c.graphql(ctx, productsPageQuery, variables, &page); err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}

		all = append(all, flattenProducts(page.Products.Nodes)...)

		if !page.Products.PageInfo.HasNextPage {
			return all, nil
		}
		end := page.Products.PageInfo.EndCursor
		cursor = &end
	}
}

// GetVariantsByProducts fetches an explicit list of products and returns
// their flattened variants. Unknown ids come back as nulls from the platform
// and are skipped.
func (c *Client) GetVariantsByProducts(ctx context.Context, productIDs []string) ([]models.ProductVariant, error) {
	var result struct {
		Nodes []*productNode `json:"nodes"`
	}
	variables := map[string]interface{}{"ids": productIDs}
	if err := c.graphql(ctx, productsByIDQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch products by id: %w", err)
	}

	products := make([]productNode, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		if node != nil {
			products = append(products, *node)
		}
	}
	return flattenProducts(products), nil
}

// flattenProducts turns nested product/variant nodes into the flat variant
// list the payload builder consumes.
func flattenProducts(products []productNode) []models.ProductVariant {
	var variants []models.ProductVariant

	for _, product := range products {
		parent := models.ParentProduct{
			ID:          product.ID,
			Title:       product.Title,
			Vendor:      product.Vendor,
			ProductType: product.ProductType,
		}
		for _, image := range product.Images.Nodes {
			parent.Images = append(parent.Images, models.ProductImage{
				ID:      image.ID,
				URL:     image.URL,
				AltText: image.AltText,
			})
		}

		for _, node := range product.Variants.Nodes {
			variant := models.ProductVariant{
				ID:      node.ID,
				Title:   node.Title,
				SKU:     node.SKU,
				Product: parent,
			}
			for _, opt := range node.SelectedOptions {
				variant.SelectedOptions = append(variant.SelectedOptions, models.SelectedOption{
					Name:  opt.Name,
					Value: opt.Value,
				})
			}
			variants = append(variants, variant)
		}
	}
	return variants
}
