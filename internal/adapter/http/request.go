package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// maxBodyBytes caps request bodies; content payloads are the largest.
const maxBodyBytes = 1 << 20

// Request bodies. Version is the caller's expected campaign version; zero
// means "apply to the latest version".
type (
	updateRequest struct {
		Version int64                `json:"version"`
		Patch   domain.CampaignPatch `json:"patch"`
	}
	transitionRequest struct {
		Version int64         `json:"version"`
		To      domain.Status `json:"to"`
	}
	spendRequest struct {
		Version int64 `json:"version"`
		Amount  int64 `json:"amount"`
	}
	budgetRequest struct {
		Version int64 `json:"version"`
		Total   int64 `json:"total"`
	}
	contentRequest struct {
		Version int64 `json:"version"`
		port.AttachContentInput
	}
	generateRequest struct {
		Version int64 `json:"version"`
		port.GenerateContentInput
	}
	eventRequest struct {
		Version int64 `json:"version"`
		domain.Event
	}
	commentRequest struct {
		Version int64  `json:"version"`
		Content string `json:"content"`
	}
	memberRequest struct {
		Version     int64       `json:"version"`
		Role        domain.Role `json:"role"`
		Permissions []string    `json:"permissions"`
	}
	versionRequest struct {
		Version int64 `json:"version"`
	}
)

// decode reads a JSON body into dst. Malformed bodies become validation
// errors so they map to 400. An empty body leaves dst untouched when
// optional is set.
func decode(r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return domain.NewError(domain.ErrValidation, "body", fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}

// listQuery parses listing filters and pagination from the query string.
// Pages past port.MaxPageNumber are rejected; limit is clamped later.
func listQuery(r *http.Request) (port.ListQuery, error) {
	q := r.URL.Query()
	lq := port.ListQuery{
		Status:   domain.Status(q.Get("status")),
		Type:     domain.Type(q.Get("type")),
		Priority: domain.Priority(q.Get("priority")),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	}
	var err error
	if lq.Page.Number, err = intParam(q.Get("page"), "page", 1, port.MaxPageNumber); err != nil {
		return lq, err
	}
	if lq.Page.Limit, err = intParam(q.Get("limit"), "limit", 1, math.MaxInt); err != nil {
		return lq, err
	}
	return lq, nil
}

func intParam(raw, name string, minimum, maximum int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minimum || n > maximum {
		return 0, domain.NewError(domain.ErrValidation, name,
			fmt.Sprintf("%s must be an integer between %d and %d", name, minimum, maximum))
	}
	return n, nil
}
