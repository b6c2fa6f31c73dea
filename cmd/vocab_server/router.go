package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teatak/vocab/dictionary"
	"github.com/teatak/vocab/metrics"
)

const defaultTop = 10

// WordResponse describes one vocabulary entry.
type WordResponse struct {
	Word    string  `json:"word"`
	Count   int64   `json:"count"`
	Rank    int     `json:"rank"`
	LogProb float64 `json:"log_prob"`
}

// TopResponse lists the highest ranked entries.
type TopResponse struct {
	Total int            `json:"total"`
	Words []WordResponse `json:"words"`
}

func newRouter(dict *dictionary.Dictionary, m *metrics.ServerMetrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "words": dict.Len()})
	})

	r.GET("/vocab/:word", func(c *gin.Context) {
		word := c.Param("word")
		count, ok := dict.Count(word)
		m.Lookup(ok)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not in vocabulary"})
			return
		}
		rank, _ := dict.Rank(word)
		c.JSON(http.StatusOK, WordResponse{
			Word:    word,
			Count:   count,
			Rank:    rank,
			LogProb: dict.LogProbability(word),
		})
	})

	r.GET("/vocab", func(c *gin.Context) {
		n, err := strconv.Atoi(c.DefaultQuery("top", strconv.Itoa(defaultTop)))
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a non-negative integer"})
			return
		}
		entries := dict.Top(n)
		resp := TopResponse{Total: dict.Len(), Words: make([]WordResponse, len(entries))}
		for i, e := range entries {
			resp.Words[i] = WordResponse{Word: e.Word, Count: e.Count, Rank: i + 1, LogProb: dict.LogProbability(e.Word)}
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))
	return r
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
