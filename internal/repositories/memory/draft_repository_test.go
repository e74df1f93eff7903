package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories/memory"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_SaveThenFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDraftRepository(cache.New(cache.NoExpiration, 0))

	_, err := repo.FindDraft(ctx, "user")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	draft := domain.NewSampleDraft()
	draft.Expenses = append(draft.Expenses, domain.ExpenseLine{LineAmount: "not a number"})
	require.NoError(t, repo.SaveDraft(ctx, "user", draft))

	got, err := repo.FindDraft(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, draft, *got)

	_, err = repo.FindDraft(ctx, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraftRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDraftRepository(cache.New(cache.NoExpiration, 0))

	require.NoError(t, repo.SaveDraft(ctx, "user", domain.NewSampleDraft()))
	require.NoError(t, repo.SaveDraft(ctx, "user", domain.NewBlankDraft()))

	got, err := repo.FindDraft(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, domain.NewBlankDraft(), *got)
}

func TestDraftRepository_Malformed(t *testing.T) {
	repo := memory.NewDraftRepository(cache.New(cache.NoExpiration, 0))
	repo.SaveRaw("user", []byte("{not json"))

	_, err := repo.FindDraft(context.Background(), "user")
	assert.ErrorIs(t, err, apperrors.ErrMalformed)
}

func TestAttachmentRepository_CopiesContent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttachmentRepository(cache.New(cache.NoExpiration, 0))
	content := []byte("%PDF-1.4")

	require.NoError(t, repo.SaveAttachment(ctx, "user", domain.Attachment{FileName: "a.pdf", ContentType: domain.PDFContentType, Content: content}))
	content[0] = 'X'

	got, err := repo.FindAttachment(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(got.Content))

	require.NoError(t, repo.DeleteAttachment(ctx, "user"))
	_, err = repo.FindAttachment(ctx, "user")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWorkspaceRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewWorkspaceRepository(time.Hour)
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())

	require.NoError(t, repo.SaveWorkspace(ctx, ws))
	ws.Draft.Vendor = "changed after save"

	got, err := repo.FindWorkspace(ctx, "user")
	require.NoError(t, err)
	assert.Empty(t, got.Draft.Vendor)

	require.NoError(t, repo.DeleteWorkspace(ctx, "user"))
	_, err = repo.FindWorkspace(ctx, "user")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
