package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/render"
	"github.com/revelaction/hmmtag/tagger"
	"go.uber.org/zap"
)

// TagController handles the tagging endpoints
type TagController struct {
	pool   *tagger.Pool
	labels []string
	logger *zap.Logger
}

func NewTagController(p *tagger.Pool, labels []string, logger *zap.Logger) *TagController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagController{pool: p, labels: labels, logger: logger}
}

// TagRequest carries either raw text, split on whitespace, or tokens.
type TagRequest struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

type TagResponse struct {
	Tokens  []string `json:"tokens"`
	Tags    []string `json:"tags"`
	LogProb float64  `json:"log_prob"`
}

// BatchRequest carries several sentences, each decoded independently.
type BatchRequest struct {
	Sentences [][]string `json:"sentences" binding:"required"`
}

type BatchResponse struct {
	Results []render.Result `json:"results"`
}

// Tag handles POST /api/v1/tag
func (tc *TagController) Tag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tokens := req.Tokens
	if len(tokens) == 0 {
		tokens = corpus.Tokenize(req.Text)
	}

	if len(tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": hmm.ErrEmptyObservations.Error()})
		return
	}

	path, err := tc.pool.Tag(c.Request.Context(), tokens)
	if err != nil {
		tc.fail(c, err)
		return
	}

	tc.logger.Debug("Tagged sentence",
		zap.Int("tokens", len(tokens)),
		zap.Float64("log_prob", path.LogProb))

	c.JSON(http.StatusOK, TagResponse{Tokens: tokens, Tags: path.Labels, LogProb: path.LogProb})
}

// TagBatch handles POST /api/v1/tag/batch
func (tc *TagController) TagBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	paths, err := tc.pool.TagAll(c.Request.Context(), req.Sentences, nil)
	if err != nil {
		tc.fail(c, err)
		return
	}

	results := make([]render.Result, len(paths))
	for i, p := range paths {
		results[i] = render.Result{Id: i, Tokens: req.Sentences[i], Tags: p.Labels, LogProb: p.LogProb}
	}

	c.JSON(http.StatusOK, BatchResponse{Results: results})
}

// Labels handles GET /api/v1/labels
func (tc *TagController) Labels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"labels": tc.labels})
}

func (tc *TagController) fail(c *gin.Context, err error) {
	if errors.Is(err, hmm.ErrEmptyObservations) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tc.logger.Error("Failed to tag", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag", "details": err.Error()})
}
