// Package server exposes the contract pipeline over HTTP.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/orsabag2/rent"
	"github.com/orsabag2/rent/mail"
	"github.com/orsabag2/rent/stamp"
	"github.com/orsabag2/rent/storage"
)

// LandmarksHeader carries the signature landmarks of a generated PDF as
// JSON. Clients pass the value back as share metadata.
const LandmarksHeader = "X-Contract-Landmarks"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMailer sets the sender for signed contracts. Without one the send
// endpoint fails.
func WithMailer(m mail.Sender) Option {
	return func(s *Server) { s.mailer = m }
}

// WithMailTimeout bounds a single send.
func WithMailTimeout(d time.Duration) Option {
	return func(s *Server) { s.mailTimeout = d }
}

// WithPublicURL sets the absolute prefix encoded in share QR codes.
func WithPublicURL(u string) Option {
	return func(s *Server) { s.publicURL = strings.TrimRight(u, "/") }
}

// WithMaxUploadBytes caps request bodies.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// WithStamps turns the share QR code and the signed reference code on or off.
func WithStamps(qrCode, referenceCode bool) Option {
	return func(s *Server) {
		s.shareQR = qrCode
		s.reference = referenceCode
	}
}

// WithSignatureY sets the fallback signature position for contracts shared
// without landmarks.
func WithSignatureY(y float64) Option {
	return func(s *Server) { s.signatureY = y }
}

// Server holds the handler dependencies.
type Server struct {
	renderer    *rent.Renderer
	store       *storage.Store
	mailer      mail.Sender
	log         *zap.Logger
	publicURL   string
	maxUpload   int64
	mailTimeout time.Duration
	shareQR     bool
	reference   bool
	signatureY  float64
}

// New returns a server over renderer and store.
func New(renderer *rent.Renderer, store *storage.Store, opts ...Option) *Server {
	s := &Server{
		renderer:    renderer,
		store:       store,
		log:         zap.NewNop(),
		maxUpload:   20 << 20,
		mailTimeout: 30 * time.Second,
		signatureY:  stamp.DefaultY,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/contracts/{file}", s.serveContract)

	r.Route("/api", func(api chi.Router) {
		api.Get("/questions", s.questions)
		api.Post("/contracts/preview", s.preview)
		api.Post("/contracts/pdf", s.contractPDF)
		api.Post("/generate-pdf", s.generatePDF)
		api.Post("/share-pdf", s.sharePDF)
		api.Post("/sign-contract", s.signContract)
		api.Post("/remove-signature", s.removeSignature)
		api.Post("/send-signed-contract", s.sendSignedContract)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
