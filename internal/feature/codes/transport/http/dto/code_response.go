// Package dto defines data transfer objects for the codes HTTP API.
package dto

// CodeItem is the reduced projection returned when details are off.
type CodeItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CodeDetail carries every stored column of a code record.
type CodeDetail struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SecurityType string `json:"security_type"`
	ISIN         string `json:"isin"`
	ListingDate  string `json:"listing_date"`
	Market       string `json:"market"`
	Industry     string `json:"industry"`
	CFICode      string `json:"cfi_code"`
	Remark       string `json:"remark"`
}
