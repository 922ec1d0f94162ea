package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/board"
	"github.com/M1Va1/Stockdoge/internal/diagram"
	"github.com/M1Va1/Stockdoge/internal/perft"
)

type movesResponse struct {
	FEN         string   `json:"fen"`
	Side        string   `json:"side"`
	PseudoLegal []string `json:"pseudo_legal"`
	Legal       []string `json:"legal"`
	Count       int      `json:"count"`
	InCheck     bool     `json:"in_check"`
}

type checkResponse struct {
	FEN     string `json:"fen"`
	Color   string `json:"color"`
	InCheck bool   `json:"in_check"`
}

type perftResponse struct {
	FEN    string `json:"fen"`
	Depth  int    `json:"depth"`
	Nodes  uint64 `json:"nodes"`
	Cached bool   `json:"cached"`
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// position parses the fen query parameter, defaulting to the start position.
func (s *Server) position(c *gin.Context) (*board.Board, board.Color, string, bool) {
	fen := c.DefaultQuery("fen", board.StartFEN)
	b, side, err := board.ParseFEN(fen, s.magics)
	if err != nil {
		badRequest(c, err)
		return nil, board.White, "", false
	}
	return b, side, b.FEN(side), true
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func (s *Server) handleMoves(c *gin.Context) {
	b, side, fen, ok := s.position(c)
	if !ok {
		return
	}
	legal := perft.LegalMoves(b, side)
	c.JSON(http.StatusOK, movesResponse{
		FEN:         fen,
		Side:        side.String(),
		PseudoLegal: moveStrings(b.GenAllMoves(side).Slice()),
		Legal:       moveStrings(legal),
		Count:       len(legal),
		InCheck:     b.IsInCheck(side),
	})
}

func (s *Server) handleCheck(c *gin.Context) {
	b, side, fen, ok := s.position(c)
	if !ok {
		return
	}
	color := side
	if q := c.Query("color"); q != "" {
		var err error
		if color, err = board.ParseColor(q); err != nil {
			badRequest(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, checkResponse{FEN: fen, Color: color.String(), InCheck: b.IsInCheck(color)})
}

func (s *Server) handlePerft(c *gin.Context) {
	b, side, fen, ok := s.position(c)
	if !ok {
		return
	}
	depth, err := strconv.Atoi(c.Query("depth"))
	if err != nil || depth < 1 || depth > s.conf.MaxPerftDepth {
		badRequest(c, fmt.Errorf("depth must be between 1 and %d", s.conf.MaxPerftDepth))
		return
	}

	logger := logx.WithContext(c.Request.Context())
	if s.store != nil {
		nodes, found, err := s.store.LookupPerft(fen, depth)
		if err != nil {
			logger.Errorf("perft cache lookup: %v", err)
		} else if found {
			c.JSON(http.StatusOK, perftResponse{FEN: fen, Depth: depth, Nodes: nodes, Cached: true})
			return
		}
	}

	nodes := perft.Count(b, side, depth)
	if s.store != nil {
		if err := s.store.SavePerft(fen, depth, nodes); err != nil {
			logger.Errorf("perft cache save: %v", err)
		}
	}
	c.JSON(http.StatusOK, perftResponse{FEN: fen, Depth: depth, Nodes: nodes})
}

// diagramOptions reads size, flip and coords. The last move is highlighted.
func diagramOptions(c *gin.Context, b *board.Board) (diagram.Options, error) {
	var opts diagram.Options
	if q := c.Query("size"); q != "" {
		size, err := strconv.Atoi(q)
		if err != nil {
			return opts, fmt.Errorf("invalid size %q", q)
		}
		opts.Size = size
	}
	opts.Flip = c.Query("flip") == "true" || c.Query("flip") == "1"
	opts.Coordinates = c.DefaultQuery("coords", "true") != "false"
	if m := b.LastMove(); m != board.NoMove {
		opts.Highlight = board.SquareBB(m.From()) | board.SquareBB(m.To())
	}
	return opts, nil
}

func (s *Server) handleDiagramPNG(c *gin.Context) {
	b, _, _, ok := s.position(c)
	if !ok {
		return
	}
	opts, err := diagramOptions(c, b)
	if err != nil {
		badRequest(c, err)
		return
	}
	var buf bytes.Buffer
	if err := diagram.WritePNG(&buf, b, opts); err != nil {
		badRequest(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleDiagramSVG(c *gin.Context) {
	b, _, _, ok := s.position(c)
	if !ok {
		return
	}
	opts, err := diagramOptions(c, b)
	if err != nil {
		badRequest(c, err)
		return
	}
	var buf bytes.Buffer
	if err := diagram.WriteSVG(&buf, b, opts); err != nil {
		badRequest(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}
