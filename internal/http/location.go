package http

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const nominatimEndpoint = "https://nominatim.openstreetmap.org/search"

// Place is one autocomplete suggestion, shaped the way the form expects.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

var locationClient = &http.Client{Timeout: 10 * time.Second}

// SearchLocations proxies the autocomplete query to Nominatim so the browser
// never talks to the geocoder directly.
func (e *Env) SearchLocations(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []Place{})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, nominatimEndpoint, nil)
	if err != nil {
		log.Printf("Location search request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Location search failed"})
		return
	}
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("q", q)
	req.URL.RawQuery = params.Encode()
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "story-tales/1.0")

	resp, err := locationClient.Do(req)
	if err != nil {
		log.Printf("Location search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Location search failed"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Location search upstream status: %d", resp.StatusCode)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Location search failed"})
		return
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		log.Printf("Location search decode: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Location search failed"})
		return
	}
	c.JSON(http.StatusOK, places)
}
