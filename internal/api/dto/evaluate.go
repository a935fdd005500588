package dto

import (
	"errors"
	"strings"

	"route-insertion-service/internal/domain"
)

type ActivityRequest struct {
	ActivityID      string   `json:"activity_id"`
	JobID           string   `json:"job_id"`
	Kind            string   `json:"kind"`
	Location        string   `json:"location"`
	Size            []int    `json:"size"`
	EarliestStart   float64  `json:"earliest_start"`
	LatestStart     *float64 `json:"latest_start"`
	ServiceDuration float64  `json:"service_duration"`
	SetupDuration   float64  `json:"setup_duration"`
}

func (a ActivityRequest) ToDomain() (*domain.Activity, error) {
	if a.ActivityID == "" {
		return nil, errors.New("activity_id is required")
	}
	kind, err := domain.ParseActivityKind(a.Kind)
	if err != nil {
		return nil, err
	}
	if kind.IsBoundary() {
		return nil, errors.New("route boundary kinds cannot be inserted")
	}
	if strings.TrimSpace(a.Location) == "" {
		return nil, errors.New("location is required")
	}
	return &domain.Activity{
		ID:              a.ActivityID,
		JobID:           a.JobID,
		Kind:            kind,
		Location:        domain.NewLocation(a.Location),
		Size:            domain.NewCapacity(a.Size...),
		EarliestStart:   a.EarliestStart,
		LatestStart:     orOpen(a.LatestStart),
		ServiceDuration: a.ServiceDuration,
		SetupDuration:   a.SetupDuration,
	}, nil
}

type EvaluateRequest struct {
	Vehicle           VehicleRequest    `json:"vehicle"`
	Activities        []ActivityRequest `json:"activities"`
	Activity          ActivityRequest   `json:"activity"`
	Position          int               `json:"position"`
	CompletenessRatio float64           `json:"completeness_ratio"`
	Calculator        string            `json:"calculator"`
}

type EvaluateResponse struct {
	Status string   `json:"status"`
	Cost   *float64 `json:"cost,omitempty"`
	// FailedConstraint names the rejecting constraint, empty when fulfilled.
	FailedConstraint string `json:"failed_constraint,omitempty"`
}
