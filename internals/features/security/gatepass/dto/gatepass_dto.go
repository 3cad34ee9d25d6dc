package dto

import (
	"time"

	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
)

type VerifyRequestDTO struct {
	AdmissionNumber string `json:"admission_number" validate:"required,max=20"`
}

// ReceiptPayload is returned only for verified outcomes.
type ReceiptPayload struct {
	Number     string    `json:"number"`
	Code       string    `json:"code"`
	ValidUntil time.Time `json:"valid_until"`
}

type VerifiedStudent struct {
	Name            string `json:"name"`
	AdmissionNumber string `json:"admission_number"`
	Course          string `json:"course,omitempty"`
	Level           string `json:"level,omitempty"`
}

type VerifyResponse struct {
	Gatepass *gpmodel.GatepassRecord `json:"gatepass"`
	Student  VerifiedStudent         `json:"student"`
	Receipt  *ReceiptPayload         `json:"receipt,omitempty"`
}

type TodayStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Denied   int `json:"denied"`
	Used     int `json:"used"`
	Pending  int `json:"pending"`
}

type StatusCounts struct {
	Verified int `json:"verified"`
	Denied   int `json:"denied"`
	Expired  int `json:"expired"`
	Used     int `json:"used"`
	Total    int `json:"total"`
}

type DailyCounts struct {
	Verified int `json:"verified"`
	Denied   int `json:"denied"`
	Expired  int `json:"expired"`
	Used     int `json:"used"`
	Total    int `json:"total"`
}

type StatsResponse struct {
	Overall StatusCounts            `json:"overall"`
	Daily   map[string]*DailyCounts `json:"daily"`
}
