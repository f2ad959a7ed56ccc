// Package view implements the read-side pipeline applied to a workflow
// collection before presentation: text search, status filter and ordering.
// The pipeline is pure; it never mutates its input slice.
package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/flowdeck/flowdeck/pkg/models"
)

type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
	SortAlphabetical SortOrder = "alphabetical"
)

// StatusAll disables status filtering.
const StatusAll = "all"

var ErrInvalidSort = errors.New("invalid sort order")

var ErrInvalidStatus = errors.New("invalid status filter")

// Options selects and orders workflows. Zero values mean "no search, any
// status, newest first".
type Options struct {
	Search string
	Status string
	Sort   SortOrder
}

// Apply runs search, then status filtering, then ordering, and returns a
// fresh slice whose elements are the input records themselves. Ordering is
// stable, so workflows that compare equal keep their relative input order.
func Apply(workflows []*models.Workflow, opts Options) ([]*models.Workflow, error) {
	status, err := normalizeStatus(opts.Status)
	if err != nil {
		return nil, err
	}

	order := opts.Sort
	if order == "" {
		order = SortNewest
	}

	result := make([]*models.Workflow, 0, len(workflows))

	query := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, workflow := range workflows {
		if query != "" && !matches(workflow, query) {
			continue
		}

		if status != "" && workflow.Status != status {
			continue
		}

		result = append(result, workflow)
	}

	switch order {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	case SortAlphabetical:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, order)
	}

	return result, nil
}

// matches reports whether the workflow's name or description contains the
// query, case-insensitively.
func matches(workflow *models.Workflow, query string) bool {
	return strings.Contains(strings.ToLower(workflow.Name), query) ||
		strings.Contains(strings.ToLower(workflow.Description), query)
}

func normalizeStatus(status string) (models.WorkflowStatus, error) {
	if status == "" || status == StatusAll {
		return "", nil
	}

	s := models.WorkflowStatus(status)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s, nil
}
