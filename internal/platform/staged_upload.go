package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const stagedUploadsCreateMutation = `
mutation StagedUploadsCreate($input: [StagedUploadInput!]!) {
  stagedUploadsCreate(input: $input) {
    stagedTargets {
      url
      resourceUrl
      parameters {
        name
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// StagedUploadParameter is one form field the upload backend requires. Order
// matters and must be preserved exactly as received.
type StagedUploadParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StagedUploadTarget is a write-once upload destination issued by the
// platform. ResourceURL is the handle later passed to job submission.
type StagedUploadTarget struct {
	URL         string                  `json:"url"`
	ResourceURL string                  `json:"resourceUrl"`
	Parameters  []StagedUploadParameter `json:"parameters"`
}

// CreateStagedUpload requests an upload target for a line-delimited JSON
// bulk mutation input file.
func (c *Client) CreateStagedUpload(ctx context.Context, filename string) (*StagedUploadTarget, error) {
	var result struct {
		StagedUploadsCreate struct {
			StagedTargets []StagedUploadTarget `json:"stagedTargets"`
			UserErrors    []UserError          `json:"userErrors"`
		} `json:"stagedUploadsCreate"`
	}

	variables := map[string]interface{}{
		"input": []map[string]interface{}{{
			"filename":   filename,
			"mimeType":   "text/jsonl",
			"httpMethod": "POST",
			"resource":   "BULK_MUTATION_VARIABLES",
		}},
	}
	if err := c.graphql(ctx, stagedUploadsCreateMutation, variables, &result); err != nil {
		return nil, fmt.Errorf("staged upload creation failed: %w", err)
	}
	if len(result.StagedUploadsCreate.UserErrors) > 0 {
		return nil, fmt.Errorf("staged upload creation failed: %s", joinUserErrors(result.StagedUploadsCreate.UserErrors))
	}
	if len(result.StagedUploadsCreate.StagedTargets) == 0 {
		return nil, fmt.Errorf("no staged upload target received")
	}

	target := result.StagedUploadsCreate.StagedTargets[0]
	return &target, nil
}

// UploadBatch posts the serialized batch to the staged target as a multipart
// form. The platform's parameters go in first, verbatim and in order, and
// the file part goes last; upload backends reject any other ordering.
func (c *Client) UploadBatch(ctx context.Context, target *StagedUploadTarget, content []byte, filename string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, param := range target.Parameters {
		if err := writer.WriteField(param.Name, param.Value); err != nil {
			return fmt.Errorf("failed to write upload parameter %q: %w", param.Name, err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, &body)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("batch upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("batch upload returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
