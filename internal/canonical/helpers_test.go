package canonical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonpl-dev/canonpl/internal/source"
)

const testFlatDoc = `{
  "metadata": {"entity": "Test Kitchen"},
  "accounts": [
    {
      "account": "400-000 Food Sales",
      "monthly_data": {
        "September 2025": {"current": 1000, "percent_of_income": 50},
        "August 2025": {"current": 900, "percent_of_income": 48}
      }
    },
    {
      "account": "400-100 Beverage Sales",
      "monthly_data": {
        "September 2025": {"current": 250, "percent_of_income": 12}
      }
    },
    {
      "account": "Total Income",
      "monthly_data": {
        "September 2025": {"current": 1250, "percent_of_income": 100}
      }
    },
    {
      "account": "510-000 Food Cost",
      "monthly_data": {
        "September 2025": {"current": 380, "percent_of_income": 19}
      }
    },
    {
      "account": "500-000 Kitchen Wages",
      "monthly_data": {
        "September 2025": {"current": 600, "percent_of_income": 30},
        "August 2025": {"current": 580, "percent_of_income": 29}
      }
    },
    {
      "account": "500-100 FOH Wages",
      "monthly_data": {
        "September 2025": {"current": 400, "percent_of_income": 20}
      }
    },
    {
      "account": "500-900 Total Payroll",
      "monthly_data": {
        "September 2025": {"current": 1000, "percent_of_income": 50}
      }
    },
    {
      "account": "599-000 Linen & Laundry",
      "monthly_data": {
        "September 2025": {"current": 75, "percent_of_income": 3}
      }
    },
    {
      "account": "Total for 599 Direct Operating Costs",
      "monthly_data": {
        "September 2025": {"current": 75, "percent_of_income": 3}
      }
    }
  ]
}`

const testNestedDoc = `{
  "sections": {
    "Income": {
      "400-000 Food Sales": {
        "Sep 2025": {"current": 980, "percent": 49},
        "Oct 2025": {"current": 1200, "percent": 48}
      },
      "400-100 Beverage Sales": {
        "Oct 2025": {"current": 300, "percent": 12},
        "410-000 Draft Beer": {
          "Oct 2025": {"current": 180, "percent": 7}
        },
        "410-100 Wine": {
          "Oct 2025": {"current": 120, "percent": 5}
        }
      },
      "Total": {
        "Oct 2025": {"current": 1500, "percent": 100}
      }
    },
    "COGS": {
      "510-000 Food Cost": {
        "Aug 2025": {"current": 360, "percent": 18},
        "Oct 2025": {"current": 400, "percent": 16}
      },
      "Total": {
        "Oct 2025": {"current": 400, "percent": 16}
      }
    }
  }
}`

func newTestService(t *testing.T) *Service {
	t.Helper()

	flatDoc, err := source.DecodeFlat(strings.NewReader(testFlatDoc))
	require.NoError(t, err)
	nestedDoc, err := source.DecodeNested(strings.NewReader(testNestedDoc))
	require.NoError(t, err)

	return NewService(source.NewFlatIndex(flatDoc), nestedDoc, Options{})
}

func newTestBuilder(t *testing.T) (*builder, *source.NestedDocument) {
	t.Helper()

	flatDoc, err := source.DecodeFlat(strings.NewReader(testFlatDoc))
	require.NoError(t, err)
	nestedDoc, err := source.DecodeNested(strings.NewReader(testNestedDoc))
	require.NoError(t, err)

	return &builder{flat: source.NewFlatIndex(flatDoc)}, nestedDoc
}
