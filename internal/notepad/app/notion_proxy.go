package app

import (
	"context"

	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/services"
)

// NotionProxy отправляет произвольный текст в Notion с учетными данными
// из внедренного CredentialStore.
type NotionProxy struct {
	creds   *CredentialStore
	gateway *ExportGateway
}

// NewNotionProxy создает NotionProxy.
func NewNotionProxy(creds *CredentialStore, gateway *ExportGateway) *NotionProxy {
	return &NotionProxy{creds: creds, gateway: gateway}
}

var _ services.ProxyService = (*NotionProxy)(nil)

// Post создает документ и возвращает его идентификатор.
func (p *NotionProxy) Post(ctx context.Context, req *dto.PostRequest) (string, error) {
	cred, ok := p.creds.Credential()
	if !ok {
		return "", ErrUnconfigured
	}
	return p.gateway.Export(ctx, entities.Note{Title: req.Title, Content: req.Content}, &cred)
}
