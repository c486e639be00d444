// Package benchmark holds ad-hoc benchmarks against a locally running
// Dealhub server. Start one first:
//
//	dealhubctl server
//	DEALHUB_BENCH_TOKEN=$(curl -s -XPOST localhost:8000/authn/login -d '{...}' | jq -r .token) \
//	  go test -bench . ./benchmark/...
package benchmark

import (
	"net/http"
	"os"
	"testing"
)

const serverURL = "http://localhost:8000"

func BenchmarkListProducts(b *testing.B) {
	b.Run("GET /products", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", serverURL+"/products", nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})

	b.Run("GET /products?sort=trending", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", serverURL+"/products?sort=trending", nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})
}

func BenchmarkWishlistToggle(b *testing.B) {
	token := os.Getenv("DEALHUB_BENCH_TOKEN")
	if token == "" {
		b.Skip("DEALHUB_BENCH_TOKEN not set")
	}
	productID := os.Getenv("DEALHUB_BENCH_PRODUCT")
	if productID == "" {
		b.Skip("DEALHUB_BENCH_PRODUCT not set")
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, _ := http.NewRequest("POST", serverURL+"/wishlist/"+productID+"/toggle", nil)
		r.Header.Add("Authorization", "Bearer "+token)
		_, _ = http.DefaultClient.Do(r)
	}
}
