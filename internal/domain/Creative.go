package domain

import (
	"math"
	"time"
)

type CreativeStatus string

const (
	CreativeStatusPending  CreativeStatus = "pending"
	CreativeStatusApproved CreativeStatus = "approved"
	CreativeStatusActive   CreativeStatus = "active"
	CreativeStatusRejected CreativeStatus = "rejected"
)

// CommissionRate é a fração do investimento repassada ao criador
const CommissionRate = 0.10

type CreativeFileType string

const (
	CreativeFileTypeImage CreativeFileType = "image"
	CreativeFileTypeVideo CreativeFileType = "video"
)

type CreativePerformance struct {
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
}

type Creative struct {
	ID          string               `json:"id"`
	CreatorID   string               `json:"creator_id"`
	BusinessID  string               `json:"business_id,omitempty"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	FileURL     string               `json:"file_url"`
	FileType    CreativeFileType     `json:"file_type"`
	Status      CreativeStatus       `json:"status"`
	Feedback    *string              `json:"feedback,omitempty"`
	Performance *CreativePerformance `json:"performance,omitempty"`
	Commission  float64              `json:"commission"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type UploadCreativeRequest struct {
	BusinessID  string           `json:"business_id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	FileURL     string           `json:"file_url"`
	FileType    CreativeFileType `json:"file_type"`
}

type ReviewCreativeRequest struct {
	Status   CreativeStatus `json:"status"`
	Feedback *string        `json:"feedback,omitempty"`
}

type CreativeFilters struct {
	CreatorID string
	Status    []CreativeStatus
}

// CalculateCommission devolve a comissão do criador arredondada em duas casas
func (c *Creative) CalculateCommission() float64 {
	if c.Performance == nil {
		return 0
	}
	return math.Round(c.Performance.Spend*CommissionRate*100) / 100
}
