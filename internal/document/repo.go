package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("document not found")

type Repo struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name        string
	ContentType string
	Content     []byte
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Document, error) {
	d := Document{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Size:        int64(len(in.Content)),
		ContentType: in.ContentType,
		Content:     in.Content,
		JobIDs:      []string{},
		UploadedAt:  time.Now(),
	}
	if err := r.DB.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns metadata newest-first. Content bytes are omitted.
func (r *Repo) List(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := r.DB.WithContext(ctx).
		Select("id", "name", "size", "content_type", "job_ids", "uploaded_at").
		Order("uploaded_at desc").
		Find(&docs).Error
	return docs, err
}

func (r *Repo) Get(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&Document{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendJobIDs records jobs fanned out over the document.
func (r *Repo) AppendJobIDs(ctx context.Context, id string, jobIDs ...string) error {
	return r.DB.WithContext(ctx).Exec(
		`update documents set job_ids = job_ids || ?::text[] where id = ?`,
		pq.StringArray(jobIDs), id,
	).Error
}
