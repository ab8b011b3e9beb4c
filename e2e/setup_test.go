//go:build e2e

package e2e

import (
	"log"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/mockautomation/storefront-e2e/internal/browser/browsertest"
)

// TestMain loads .env and shares one browser between all live-site tests.
// Run with: go test -tags e2e ./e2e/...
func TestMain(m *testing.M) {
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	os.Exit(browsertest.Main(m))
}
