package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/orsabag2/rent"
	"github.com/orsabag2/rent/clause"
	"github.com/orsabag2/rent/doctpl"
	"github.com/orsabag2/rent/layout"
	"github.com/orsabag2/rent/mail"
	"github.com/orsabag2/rent/stamp"
	"github.com/orsabag2/rent/storage"
)

type contractRequest struct {
	Answers   clause.Answers `json:"answers"`
	Mode      string         `json:"mode"`
	Signature string         `json:"signature,omitempty"`
}

func (s *Server) questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sections": s.renderer.Sections()})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	mode, err := rent.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := s.renderer.ContractHTML(req.Answers, mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": body})
}

func (s *Server) contractPDF(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	mode, err := rent.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sig, err := decodeSignature(req.Signature)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	res, err := s.renderer.PDF(&buf, req.Answers, mode, sig)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRendered(w, buf.Bytes(), res)
}

type generateRequest struct {
	HTML        string       `json:"html"`
	SummaryText string       `json:"summaryText"`
	Runs        []doctpl.Run `json:"runs"`
	Signature   string       `json:"signature,omitempty"`
}

func (s *Server) generatePDF(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sig, err := decodeSignature(req.Signature)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var (
		buf bytes.Buffer
		res layout.Result
	)
	switch {
	case strings.TrimSpace(req.HTML) != "":
		res, err = s.renderer.PDFFromHTML(&buf, req.HTML, sig)
	case len(req.Runs) > 0:
		res, err = s.renderer.PDFFromDocument(&buf, &doctpl.Document{Runs: req.Runs}, sig)
	case req.SummaryText != "":
		res, err = s.renderer.PDFFromText(&buf, req.SummaryText)
	default:
		err = badRequest("one of html, runs or summaryText is required")
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRendered(w, buf.Bytes(), res)
}

func (s *Server) writeRendered(w http.ResponseWriter, pdf []byte, res layout.Result) {
	if lms, err := json.Marshal(res.Landmarks); err == nil {
		w.Header().Set(LandmarksHeader, string(lms))
	}
	writePDF(w, pdf, "contract.pdf")
}

func (s *Server) sharePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(w, r, err)
			return
		}
		s.fail(w, r, badRequest("invalid multipart form: %v", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, badRequest("No file uploaded"))
		return
	}
	defer file.Close()

	id, err := s.store.Save(file, []byte(r.FormValue("metadata")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	url := storage.URL(id)
	if s.shareQR && s.publicURL != "" {
		s.stampShareCode(id, s.publicURL+url)
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// stampShareCode adds the QR code to the stored copy in place. Uploads that
// cannot be stamped are kept as they are.
func (s *Server) stampShareCode(id, link string) {
	path, err := s.store.Path(id)
	if err != nil {
		s.log.Warn("share stamp skipped", zap.String("id", id), zap.Error(err))
		return
	}
	tmp := path + ".tmp"
	if err := stamp.ApplyFile(path, tmp, stamp.Overlay{ShareURL: link}); err != nil {
		s.log.Warn("share stamp skipped", zap.String("id", id), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		s.log.Warn("share stamp not saved", zap.String("id", id), zap.Error(err))
	}
}

type signRequest struct {
	ID        string `json:"id"`
	Signature string `json:"signature"`
	Role      string `json:"role"`
}

func (s *Server) signContract(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ID == "" || req.Signature == "" {
		s.fail(w, r, badRequest("Missing id or signature"))
		return
	}
	role, err := stamp.ParseRole(req.Role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sig, err := decodeSignature(req.Signature)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	src, err := s.store.Path(req.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lms, err := s.store.Metadata(req.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dst, err := s.store.SignedPath(req.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ov := stamp.Overlay{
		Signature: sig,
		Role:      role,
		Landmarks: lms,
		DefaultY:  s.signatureY,
	}
	if s.reference {
		ov.Reference = req.ID
	}
	if err := stamp.ApplyFile(src, dst, ov); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"signedPdfUrl": storage.SignedURL(req.ID)})
}

type idRequest struct {
	ID string `json:"id"`
}

func (s *Server) removeSignature(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ID == "" {
		s.fail(w, r, badRequest("Missing id"))
		return
	}
	if err := s.store.RemoveSigned(req.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type sendRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) sendSignedContract(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ID == "" || req.Email == "" || req.Role == "" {
		s.fail(w, r, badRequest("Missing id, email, or role"))
		return
	}
	path, err := s.store.Signed(req.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	msg, err := mail.SignedContract(req.Email, req.Role, path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.mailer == nil {
		s.fail(w, r, errors.New("mail: no sender configured"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.mailTimeout)
	defer cancel()
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) serveContract(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.Lookup(chi.URLParam(r, "file"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/pdf")
	if _, err := io.Copy(w, f); err != nil {
		s.log.Warn("serving contract", zap.String("path", path), zap.Error(err))
	}
}
