package constant

// Extraction service endpoints, relative to the configured service URL.
const (
	EndpointExtract = "/api/extract"
	EndpointQueue   = "/api/queue-download"
	EndpointStatus  = "/api/status/"
	EndpointFile    = "/api/file/"
	EndpointHealth  = "/healthz"
)

// DefaultServiceURL is where a locally started service listens.
const DefaultServiceURL = "http://localhost:8000"
