package endpoints

import (
	"github.com/ujwalkandi/docweb/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Document endpoints
		&UploadEndpoint{},
		&ListDocumentsEndpoint{},
		&GetDocumentEndpoint{},
		&DeleteDocumentEndpoint{},

		// Pipeline endpoints
		&ExtractEndpoint{},
		&MarkdownEndpoint{},
		&HTMLEndpoint{},
		&DownloadEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
