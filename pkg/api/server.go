// Package api provides the REST API server for bank2patch
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bank2patch/pkg/bank"
	"bank2patch/pkg/decode"
	"bank2patch/pkg/patch"
)

// @title bank2patch API
// @version 1.0
// @description API for converting sound-bank CSV rows into patch documents
// @host localhost:8080
// @BasePath /api/v1

// PatchDocument is one converted preset in an API response.
type PatchDocument struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// BankResponse is the result of converting an uploaded bank.
type BankResponse struct {
	Schema         string          `json:"schema"`
	Count          int             `json:"count"`
	Skipped        int             `json:"skipped"`
	DepthConflicts int             `json:"depth_conflicts"`
	Patches        []PatchDocument `json:"patches"`
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/schemas", listSchemas)
		v1.POST("/convert/bank", handleBank)
		v1.POST("/convert/row", handleRow)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bank2patch",
	})
}

// listSchemas godoc
// @Summary List schema revisions
// @Description Returns the supported bank mapping revisions, oldest first
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/schemas [get]
func listSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"schemas": decode.SchemaNames(),
		"default": decode.SchemaLatest.String(),
	})
}

func querySchema(c *gin.Context) (decode.Schema, bool) {
	name := c.DefaultQuery("schema", decode.SchemaLatest.String())
	schema, err := decode.ParseSchema(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return schema, true
}

// handleBank godoc
// @Summary Convert a sound bank
// @Description Upload a bank CSV and receive one patch document per accepted row
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bank CSV to convert"
// @Param schema query string false "Schema revision (default: v3)"
// @Success 200 {object} BankResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/bank [post]
func handleBank(c *gin.Context) {
	schema, ok := querySchema(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	assembler := bank.NewAssembler(schema)
	patches, skipped, err := bank.DecodePatches(file, assembler)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := BankResponse{
		Schema:         schema.String(),
		Count:          len(patches),
		Skipped:        skipped,
		DepthConflicts: assembler.DepthConflicts(),
		Patches:        make([]PatchDocument, 0, len(patches)),
	}
	for _, p := range patches {
		doc, err := patch.Encode(p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.Patches = append(resp.Patches, PatchDocument{Name: p.Name, Document: string(doc)})
	}

	c.JSON(http.StatusOK, resp)
}

// rowRequest is the body of a single-row conversion.
type rowRequest struct {
	Row    []string `json:"row" binding:"required"`
	Schema string   `json:"schema"`
}

// handleRow godoc
// @Summary Convert one bank row
// @Description Convert a single positional row into a patch document
// @Tags convert
// @Accept json
// @Produce json
// @Success 200 {object} PatchDocument
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/row [post]
func handleRow(c *gin.Context) {
	var req rowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schema := decode.SchemaLatest
	if req.Schema != "" {
		var err error
		if schema, err = decode.ParseSchema(req.Schema); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	p, err := bank.NewAssembler(schema).PatchFromRow(req.Row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"excluded": true})
		return
	}

	doc, err := patch.Encode(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, PatchDocument{Name: p.Name, Document: string(doc)})
}
