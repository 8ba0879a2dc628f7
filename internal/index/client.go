// Package index is the HTTP client for the indexing/storage collaborator
// that persists chunk sequences as retrieval units.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/docchunk/internal/document"
)

// Client communicates with the index service HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DocumentInfo summarizes one indexed document.
type DocumentInfo struct {
	DocID      string `json:"doc_id"`
	Title      string `json:"title,omitempty"`
	Source     string `json:"source,omitempty"`
	ChunkCount int    `json:"chunk_count"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// PutChunks stores one batch of chunks for a document. Batches are ordered
// by ordinal; the index appends them under the document id.
func (c *Client) PutChunks(ctx context.Context, docID string, chunks []document.Chunk) error {
	body, err := json.Marshal(map[string]any{"chunks": chunks})
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/documents/"+url.PathEscape(docID)+"/chunks", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &RetryableError{Err: fmt.Errorf("put chunks: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("put chunks %s: status %d: %s", docID, resp.StatusCode, string(respBody))
		if retryableStatus(resp.StatusCode) {
			return &RetryableError{Err: err}
		}
		return err
	}
	return nil
}

// DeleteDocument removes a document and all its chunks from the index.
func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/documents/"+url.PathEscape(docID), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete document %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
	return nil
}

// ListDocuments returns indexed documents, newest first.
func (c *Client) ListDocuments(ctx context.Context, limit int) ([]DocumentInfo, error) {
	u := c.baseURL + "/documents"
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}
	var result struct {
		Documents []DocumentInfo `json:"documents"`
	}
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}
	return result.Documents, nil
}

// SummaryChunks returns the chunks flagged is_summary_section for a
// document: the one-chunk-per-document coverage view.
func (c *Client) SummaryChunks(ctx context.Context, docID string) ([]document.Chunk, error) {
	u := c.baseURL + "/documents/" + url.PathEscape(docID) + "/chunks?summary=true"
	return c.getChunks(ctx, u)
}

// ChunksBySection returns a document's chunks filtered by section title,
// for targeted retrieval.
func (c *Client) ChunksBySection(ctx context.Context, docID, title string) ([]document.Chunk, error) {
	u := c.baseURL + "/documents/" + url.PathEscape(docID) + "/chunks?section_title=" + url.QueryEscape(title)
	return c.getChunks(ctx, u)
}

func (c *Client) getChunks(ctx context.Context, u string) ([]document.Chunk, error) {
	var result struct {
		Chunks []document.Chunk `json:"chunks"`
	}
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}
	return result.Chunks, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("get %s: status %d: %s", u, resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
