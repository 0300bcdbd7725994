package challonge

import (
	"context"
	"net/http"
)

// AttachmentParams needs at least one of URL and Description. File uploads
// are not supported.
type AttachmentParams struct {
	URL         string
	Description string
}

func (p AttachmentParams) validate() error {
	if p.URL == "" && p.Description == "" {
		return invalidArgument("attachment needs a url or a description")
	}
	return nil
}

func (p AttachmentParams) form() Form {
	var f Form
	if p.URL != "" {
		f.Add("match_attachment[url]", p.URL)
	}
	if p.Description != "" {
		f.Add("match_attachment[description]", p.Description)
	}
	return f
}

func attachmentsPath(tournament string, matchID int) string {
	return matchPath(tournament, matchID) + "/attachments"
}

func attachmentPath(tournament string, matchID, id int) string {
	return attachmentsPath(tournament, matchID) + "/" + ID(id)
}

func buildListAttachments(tournament string, matchID int) Request {
	return Request{Method: http.MethodGet, Path: attachmentsPath(tournament, matchID) + ".json"}
}

func buildCreateAttachment(tournament string, matchID int, p AttachmentParams) (Request, error) {
	if err := p.validate(); err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPost, Path: attachmentsPath(tournament, matchID) + ".json", Form: p.form()}, nil
}

func buildGetAttachment(tournament string, matchID, id int) Request {
	return Request{Method: http.MethodGet, Path: attachmentPath(tournament, matchID, id) + ".json"}
}

func buildUpdateAttachment(tournament string, matchID, id int, p AttachmentParams) (Request, error) {
	if err := p.validate(); err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPut, Path: attachmentPath(tournament, matchID, id) + ".json", Form: p.form()}, nil
}

func buildDeleteAttachment(tournament string, matchID, id int) Request {
	return Request{Method: http.MethodDelete, Path: attachmentPath(tournament, matchID, id) + ".json"}
}

// AttachmentsHandler requires the tournament to accept attachments.
type AttachmentsHandler struct {
	call *caller
}

func (h *AttachmentsHandler) List(ctx context.Context, tournament string, matchID int) ([]Attachment, error) {
	body, err := h.call.do(ctx, buildListAttachments(tournament, matchID))
	if err != nil {
		return nil, err
	}
	return DecodeAttachments(body)
}

func (h *AttachmentsHandler) Create(ctx context.Context, tournament string, matchID int, p AttachmentParams) (*Attachment, error) {
	req, err := buildCreateAttachment(tournament, matchID, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

func (h *AttachmentsHandler) Get(ctx context.Context, tournament string, matchID, id int) (*Attachment, error) {
	return h.one(ctx, buildGetAttachment(tournament, matchID, id))
}

func (h *AttachmentsHandler) Update(ctx context.Context, tournament string, matchID, id int, p AttachmentParams) (*Attachment, error) {
	req, err := buildUpdateAttachment(tournament, matchID, id, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

func (h *AttachmentsHandler) Delete(ctx context.Context, tournament string, matchID, id int) error {
	_, err := h.call.do(ctx, buildDeleteAttachment(tournament, matchID, id))
	return err
}

func (h *AttachmentsHandler) one(ctx context.Context, req Request) (*Attachment, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	a, err := DecodeAttachment(body)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
