// Package search keeps the doctor directory in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

type DoctorIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewDoctorIndex(es *elasticsearch.Client, index string) *DoctorIndex {
	return &DoctorIndex{es: es, index: index}
}

type doctorDoc struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	ImageURL  *string `json:"imageUrl"`
	UpdatedAt string  `json:"updatedAt"`
}

func (d *DoctorIndex) Index(ctx context.Context, u *entity.User) error {
	doc := doctorDoc{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		ImageURL:  u.ImageURL,
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: d.index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, d.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index doctor %s: %s", u.ID, res.Status())
	}
	return nil
}

// Search runs a multi_match over name and email; name hits rank higher.
func (d *DoctorIndex) Search(ctx context.Context, query string, size int) ([]entity.UserSummary, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "email"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := d.es.Search(
		d.es.Search.WithContext(c),
		d.es.Search.WithIndex(d.index),
		d.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search doctors: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source doctorDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UserSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.UserSummary{
			ID:       h.Source.ID,
			Name:     h.Source.Name,
			Email:    h.Source.Email,
			Role:     entity.Role(h.Source.Role),
			ImageURL: h.Source.ImageURL,
		})
	}
	return out, nil
}

var _ repository.DoctorIndex = (*DoctorIndex)(nil)
