package http

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/bhaktikarche/story-tales1/internal/models"
	"github.com/bhaktikarche/story-tales1/internal/storage"
)

// --- Configuration Constants ---
const (
	maxImagesPerPost = 10
	rateLimitRPS     = 1.0 // one create per second per IP
	rateLimitBurst   = 10
)

// --- Rate Limiter ---
type IPRateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      r,
		burst:    b,
	}
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = limiter
	}
	return limiter
}

// sweep periodically drops visitors whose buckets have refilled, so the map
// does not grow unbounded.
func (rl *IPRateLimiter) sweep(every time.Duration) {
	for {
		time.Sleep(every)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if v.Tokens() >= float64(rl.burst) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please wait."})
			return
		}
		c.Next()
	}
}

// --- Handlers ---
type Env struct {
	DB    *gorm.DB
	Store *storage.Store
}

// postView is a Post denormalized for the wire: scalar columns plus the bare
// image URLs.
type postView struct {
	models.Post
	Images []string `json:"images"`
}

func (e *Env) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := e.DB.Preload("Images").Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
		return
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.ImageURL)
		}
		views = append(views, postView{Post: p, Images: urls})
	}
	c.JSON(http.StatusOK, views)
}

// CreatePost accepts the multipart trip form plus up to ten image files. The
// post row and all image rows commit in one transaction; image files are
// written to the store as the rows are inserted and removed again (best
// effort) if the transaction fails.
func (e *Env) CreatePost(c *gin.Context) {
	userID := currentUserID(c)

	title := strings.TrimSpace(c.PostForm("title"))
	location := strings.TrimSpace(c.PostForm("location"))
	experience := strings.TrimSpace(c.PostForm("experience"))
	budgetRaw := strings.TrimSpace(c.PostForm("budget"))

	if title == "" || location == "" || experience == "" || budgetRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	// Zero is rejected deliberately: a free trip post is a form mistake, not
	// a budget.
	budget, err := strconv.ParseFloat(budgetRaw, 64)
	if err != nil || budget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Budget must be a positive number"})
		return
	}

	latitude, err := optionalFloat(c.PostForm("latitude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid latitude"})
		return
	}
	longitude, err := optionalFloat(c.PostForm("longitude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid longitude"})
		return
	}
	duration, err := optionalInt(c.PostForm("duration"))
	if err != nil || (duration != nil && *duration <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duration must be a positive number of days"})
		return
	}

	season := strings.TrimSpace(c.PostForm("season"))
	if season == "" {
		season = "Any"
	}
	if !models.ValidSeason(season) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid season"})
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	if len(files) > maxImagesPerPost {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You can upload up to 10 images only"})
		return
	}

	post := models.Post{
		UserID:       userID,
		Title:        title,
		LocationName: location,
		Latitude:     latitude,
		Longitude:    longitude,
		Experience:   experience,
		Budget:       budget,
		DurationDays: duration,
		BestSeason:   season,
	}

	var written []string
	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for _, fh := range files {
			data, err := readUpload(fh)
			if err != nil {
				return err
			}
			url, err := e.Store.Put(fh.Filename, data)
			if err != nil {
				return err
			}
			written = append(written, url)
			img := models.PostImage{PostID: post.ID, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating post: %v", err)
		for _, url := range written {
			if rmErr := e.Store.Remove(url); rmErr != nil {
				log.Printf("Orphaned upload %s: %v", url, rmErr)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "postId": post.ID})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// optionalFloat parses a form value that may legitimately be absent.
func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
