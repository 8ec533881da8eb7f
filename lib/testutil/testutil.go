package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"tnfirefly-backend/lib/telemetry"

	"github.com/mazen160/go-random"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	DB *sql.DB
}

func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(fmt.Sprintf("test:%s", params.Name))

	var sqlite *sql.DB
	if params.DbSchema != "" {
		var err error
		sqlite, err = sql.Open("sqlite", ":memory:")
		if err != nil {
			t.Fatal(err)
		}
		_, err = sqlite.Exec(params.DbSchema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}

	return ServiceResult{DB: sqlite}, cleanup
}

// RandomPollster fabricates a pollster-looking name so merge tests
// can churn through many distinct identities.
func RandomPollster(t testing.TB) string {
	s, err := random.String(8)
	if err != nil {
		t.Fatal(err)
	}
	s = strings.ToLower(s)
	return fmt.Sprintf("%s%s Research", strings.ToUpper(s[:1]), s[1:])
}

// RandomDate yields an ISO date inside the 2025-2026 cycle window.
func RandomDate(t testing.TB) string {
	month, err := random.IntRange(1, 13)
	if err != nil {
		t.Fatal(err)
	}
	day, err := random.IntRange(1, 29)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("2025-%02d-%02d", month, day)
}

// RandomPercent yields a plausible topline percentage.
func RandomPercent(t testing.TB) float64 {
	v, err := random.IntRange(1, 100)
	if err != nil {
		t.Fatal(err)
	}
	return float64(v)
}
