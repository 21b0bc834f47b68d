package model

import "time"

// MerchantConfig is the immutable configuration bound to one Tripay payment
// channel. The per-bank variants differ only by Method and DisplayName, so
// they are data here instead of one type per bank.
type MerchantConfig struct {
	MerchantCode string
	APIKey       string
	PrivateKey   string // HMAC-SHA256 shared secret
	Sandbox      bool
	DurationDays int    // payment-code validity, 1..7 days
	Method       string // Tripay channel code, e.g. "BCAVA"
	DisplayName  string // e.g. "Bank BCA"
}

// ExpiryDuration returns the payment-code validity window.
func (c MerchantConfig) ExpiryDuration() time.Duration {
	return time.Duration(c.DurationDays) * 24 * time.Hour
}

// ChannelVariant names one supported payment channel.
type ChannelVariant struct {
	Method      string `json:"method"`
	DisplayName string `json:"display_name"`
}

// Channels lists the payment channels this integration supports.
// Closed Payment only; all settle in IDR.
var Channels = []ChannelVariant{
	{Method: "BCAVA", DisplayName: "Bank BCA"},
	{Method: "BRIVA", DisplayName: "Bank BRI"},
	{Method: "MANDIRIVA", DisplayName: "Bank Mandiri"},
	{Method: "CIMBVA", DisplayName: "Bank CIMB"},
	{Method: "MUAMALATVA", DisplayName: "Bank Muamalat"},
	{Method: "PERMATAVA", DisplayName: "Bank Permata"},
	{Method: "SMSVA", DisplayName: "Bank Sinarmas"},
	{Method: "ALFAMART", DisplayName: "Alfamart"},
	{Method: "ALFAMIDI", DisplayName: "Alfamidi"},
	{Method: "QRISC", DisplayName: "Scan QR (Customizable)"},
}

// ChannelByMethod resolves a channel code; ok is false for unknown codes.
func ChannelByMethod(method string) (ChannelVariant, bool) {
	for _, ch := range Channels {
		if ch.Method == method {
			return ch, true
		}
	}
	return ChannelVariant{}, false
}
