package domain

import "time"

type AdSpendEntry struct {
	ID                 string  `json:"_id"`
	PostingID          string  `json:"postingId"`
	Date               string  `json:"date"`
	BusinessID         string  `json:"businessId"`
	BusinessCampaignID string  `json:"businessCampaignId"`
	MetaAdAccountID    string  `json:"metaAdAccountId"`
	MetaAdID           string  `json:"metaAdId"`
	CampaignID         string  `json:"campaignId"`
	AdSetID            string  `json:"adSetId"`
	AdCreativeID       string  `json:"adCreativeId"`
	Spend              float64 `json:"spend"`
	Clicks             int     `json:"clicks"`
	Conversions        int     `json:"conversions"`
	Revenue            float64 `json:"revenue"`
	InstagramPermalink string  `json:"instagram_permalink"`
}

type AdSpendFilters struct {
	From *time.Time
	To   *time.Time
}

type AdSpendTotals struct {
	Spend       float64 `json:"spend"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

type AdSpendReport struct {
	BusinessInfoID    string         `json:"business_info_id"`
	From              string         `json:"from,omitempty"`
	To                string         `json:"to,omitempty"`
	Count             int            `json:"count"`
	Entries           []AdSpendEntry `json:"entries"`
	Totals            AdSpendTotals  `json:"totals"`
	ROI               *float64       `json:"roi"`
	CPC               *float64       `json:"cpc"`
	CostPerConversion *float64       `json:"cost_per_conversion"`
}
