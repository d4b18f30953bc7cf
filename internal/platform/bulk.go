package platform

import (
	"context"
	"fmt"

	"skucraft/pkg/models"
)

// Mutation templates the bulk executor runs once per uploaded line. The
// choice between them is made per batch, never per line: SyncProductSetTemplate
// for batches whose largest product stays at or below the inline variant
// limit, AsyncProductSetTemplate above it.
const (
	SyncProductSetTemplate = `mutation productSetSync($input: ProductSetInput!) {
  productSet(synchronous: true, input: $input) {
    product {
      id
      title
      variants(first: 250) {
        edges {
          node {
            id
            sku
            title
          }
        }
      }
    }
    userErrors {
      field
      message
      code
    }
  }
}`

	AsyncProductSetTemplate = `mutation productSetAsync($input: ProductSetInput!) {
  productSet(synchronous: false, input: $input) {
    product {
      id
      title
      variants(first: 250) {
        edges {
          node {
            id
            sku
            title
          }
        }
      }
    }
    productSetOperation {
      id
      status
      userErrors {
        field
        message
        code
      }
    }
    userErrors {
      field
      message
      code
    }
  }
}`
)

const bulkRunMutation = `
mutation BulkRun($mutation: String!, $stagedUploadPath: String!) {
  bulkOperationRunMutation(mutation: $mutation, stagedUploadPath: $stagedUploadPath) {
    bulkOperation {
      id
      status
      createdAt
      completedAt
      objectCount
      fileSize
      url
      partialDataUrl
      type
    }
    userErrors {
      field
      message
    }
  }
}`

const bulkJobQuery = `
query BulkJob($id: ID!) {
  node(id: $id) {
    ... on BulkOperation {
      id
      status
      createdAt
      completedAt
      objectCount
      fileSize
      url
      partialDataUrl
      errorCode
      type
    }
  }
}`

const currentBulkJobQuery = `
query CurrentBulkJob {
  currentBulkOperation {
    id
    status
    createdAt
    completedAt
    objectCount
    fileSize
    url
    partialDataUrl
    errorCode
    type
  }
}`

const productSetDirectMutation = `
mutation ProductSetDirect($input: ProductSetInput!) {
  productSet(synchronous: true, input: $input) {
    product {
      id
      title
      variants(first: 250) {
        edges {
          node {
            id
            sku
            title
          }
        }
      }
    }
    userErrors {
      field
      message
      code
    }
  }
}`

type bulkOperationNode struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	CompletedAt    string `json:"completedAt"`
	ObjectCount    string `json:"objectCount"`
	FileSize       string `json:"fileSize"`
	URL            string `json:"url"`
	PartialDataURL string `json:"partialDataUrl"`
	ErrorCode      string `json:"errorCode"`
	Type           string `json:"type"`
}

func (n bulkOperationNode) toModel() models.BulkJob {
	return models.BulkJob{
		ID:             n.ID,
		Status:         models.BulkJobStatus(n.Status),
		CreatedAt:      n.CreatedAt,
		CompletedAt:    n.CompletedAt,
		ObjectCount:    n.ObjectCount,
		FileSize:       n.FileSize,
		ResultURL:      n.URL,
		PartialDataURL: n.PartialDataURL,
		ErrorCode:      n.ErrorCode,
		Type:           n.Type,
	}
}

// SubmitBulkMutation starts a bulk job that replays the mutation template
// against every line of the uploaded batch.
func (c *Client) SubmitBulkMutation(ctx context.Context, mutationTemplate, stagedUploadPath string) (*models.BulkJob, error) {
	var result struct {
		BulkOperationRunMutation struct {
			BulkOperation *bulkOperationNode `json:"bulkOperation"`
			UserErrors    []UserError        `json:"userErrors"`
		} `json:"bulkOperationRunMutation"`
	}

	variables := map[string]interface{}{
		"mutation":         mutationTemplate,
		"stagedUploadPath": stagedUploadPath,
	}
	if err := c.graphql(ctx, bulkRunMutation, variables, &result); err != nil {
		return nil, fmt.Errorf("bulk job submission failed: %w", err)
	}
	if len(result.BulkOperationRunMutation.UserErrors) > 0 {
		return nil, fmt.Errorf("bulk job submission failed: %s", joinUserErrors(result.BulkOperationRunMutation.UserErrors))
	}
	if result.BulkOperationRunMutation.BulkOperation == nil {
		return nil, fmt.Errorf("bulk job submission returned no job")
	}

	job := result.BulkOperationRunMutation.BulkOperation.toModel()
	return &job, nil
}

// GetBulkJob fetches the state of a known job.
func (c *Client) GetBulkJob(ctx context.Context, jobID string) (*models.BulkJob, error) {
	var result struct {
		Node *bulkOperationNode `json:"node"`
	}
	if err := c.graphql(ctx, bulkJobQuery, map[string]interface{}{"id": jobID}, &result); err != nil {
		return nil, fmt.Errorf("failed to get bulk job: %w", err)
	}
	if result.Node == nil {
		return nil, fmt.Errorf("bulk job %s not found", jobID)
	}
	job := result.Node.toModel()
	return &job, nil
}

// CurrentBulkJob returns the account's outstanding job, or nil when none
// exists. The platform allows at most one job per account, so this doubles
// as the pre-submission conflict check and as orphan discovery on startup.
func (c *Client) CurrentBulkJob(ctx context.Context) (*models.BulkJob, error) {
	var result struct {
		CurrentBulkOperation *bulkOperationNode `json:"currentBulkOperation"`
	}
	if err := c.graphql(ctx, currentBulkJobQuery, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get current bulk job: %w", err)
	}
	if result.CurrentBulkOperation == nil {
		return nil, nil
	}
	job := result.CurrentBulkOperation.toModel()
	return &job, nil
}

// ProductSetDirect applies one product update inline and returns the
// platform's field-level errors, if any. Transport failures are returned as
// an error; user errors are data.
func (c *Client) ProductSetDirect(ctx context.Context, input ProductSetInput) ([]UserError, error) {
	var result struct {
		ProductSet struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productSet"`
	}

	variables := map[string]interface{}{"input": input}
	if err := c.graphql(ctx, productSetDirectMutation, variables, &result); err != nil {
		return nil, fmt.Errorf("product update failed: %w", err)
	}
	return result.ProductSet.UserErrors, nil
}
