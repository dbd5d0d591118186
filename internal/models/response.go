package models

// ResultMeta reports how a pipeline result was produced. Source is the name
// of the provider that satisfied the request, "cache", or "mock".
type ResultMeta struct {
	UsedFallback bool     `json:"used_fallback"`
	Source       string   `json:"source"`
	Warnings     []string `json:"warnings,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
