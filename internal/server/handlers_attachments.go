package server

import (
	"errors"
	"net/http"
	"time"

	"reklamapp/internal/domain"
	"reklamapp/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// maxAttachmentSize caps uploads at 20 MB.
const maxAttachmentSize = 20 << 20

// handleUploadAttachment stores an uploaded file and references it on the
// complaint. Closed complaints refuse new attachments.
func (s *Server) handleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")

	c, err := s.store.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !c.IsOpen() {
		http.Error(w, "A lezárt reklamációhoz nem adható új melléklet", http.StatusConflict)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAttachmentSize)
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		http.Error(w, "Error processing upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error processing upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name, err := s.attachments.Save(id, header.Filename, time.Now(), file)
	if err != nil {
		s.log.Error("attachment save failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "Error saving attachment", http.StatusInternalServerError)
		return
	}

	err = s.store.Update(id, func(c *domain.Complaint) error {
		c.Photos = append(c.Photos, name)
		return nil
	})
	if err != nil {
		// The record update lost; drop the orphan file.
		s.attachments.RemoveAll([]string{name})
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	s.log.Info("attachment added", zap.String("id", id), zap.String("file", name))
	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleDownloadAttachment serves a stored attachment file
func (s *Server) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	name := getURLParam(r, "name")
	path, err := s.attachments.Path(name)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	http.ServeFile(w, r, path)
}

// handleDeleteAttachment drops the reference from the complaint and removes
// the file best-effort. The reference removal always wins.
func (s *Server) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	name := getURLParam(r, "name")

	err := s.store.Update(id, func(c *domain.Complaint) error {
		kept := c.Photos[:0]
		for _, photo := range c.Photos {
			if photo != name {
				kept = append(kept, photo)
			}
		}
		c.Photos = kept
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	if err := s.attachments.Remove(name); err != nil {
		s.log.Warn("attachment file removal failed",
			zap.String("id", id),
			zap.String("file", name),
			zap.Error(err))
	}

	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleComplaintQR returns a QR code PNG pointing at the complaint's detail
// page, for printable paperwork labels.
func (s *Server) handleComplaintQR(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	if _, err := s.store.Get(id); err != nil {
		http.NotFound(w, r)
		return
	}

	url := "http://" + s.config.Address() + "/complaints/" + id
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Error generating QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
