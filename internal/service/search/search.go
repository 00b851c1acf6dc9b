package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/job_board/internal/models"
)

type JobDoc struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CategoryID      uint   `json:"category_id"`
	UserID          uint   `json:"user_id"`
	Remote          bool   `json:"remote"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
}

func docFromJob(job *models.Job) JobDoc {
	return JobDoc{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		CategoryID:      job.CategoryID,
		UserID:          job.UserID,
		Remote:          job.Remote,
		JobType:         job.JobType,
		ExperienceLevel: job.ExperienceLevel,
	}
}

func IndexJob(ctx context.Context, es *elasticsearch.Client, index string, job *models.Job) error {
	data, err := json.Marshal(docFromJob(job))
	if err != nil {
		return fmt.Errorf("index job: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(job.ID), 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index job: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index job: %s", res.Status())
	}
	return nil
}

func DeleteJob(ctx context.Context, es *elasticsearch.Client, index string, jobID uint) error {
	res, err := es.Delete(
		index,
		strconv.FormatUint(uint64(jobID), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete job from index: %w", err)
	}
	defer res.Body.Close()

	// a missing doc is fine, the goal is it being gone
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete job from index: %s", res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []JobDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search: %s: %s", res.Status(), strings.TrimSpace(string(msg)))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source JobDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	jobs := make([]JobDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		jobs[i] = hit.Source
	}
	return r.Hits.Total.Value, jobs, nil
}
