// This file implements EvidenceService: completion-proof files attached to
// tasks. Blobs go to S3-compatible object storage, metadata to Postgres.
package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mvasiljevs/taskdesk/internal/common"
	sc "github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// presignValidity bounds how long an issued download link stays usable.
const presignValidity = 15 * time.Minute

// EvidenceService stores evidence blobs in object storage and their metadata
// rows through the repositories. Download links are presigned per request and
// never persisted.
type EvidenceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewEvidenceService constructs an EvidenceService using repositories and
// server config.
func NewEvidenceService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *EvidenceService {
	return &EvidenceService{
		db:          db,
		repomanager: m,
		config:      config,
	}
}

// MakeStorageKey builds the object key for an evidence blob. The uuid prefix
// keeps same-named files from colliding.
func MakeStorageKey(taskID, userID int64, fileName string) string {
	return fmt.Sprintf("evidences/%d/%d/%v-%s", taskID, userID, uuid.New(), fileName)
}

func (s *EvidenceService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

// Upload stores one evidence file for a task. Only the task's assignee or an
// admin may attach evidence. The blob is written to object storage first;
// the metadata row follows, so a torn upload leaves at worst an orphaned
// blob and never a dangling row.
func (s *EvidenceService) Upload(ctx context.Context, identity *Identity, taskID int64, fileName, fileType string, data []byte) (*models.Evidence, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(identity, task.AssignedToUserID); err != nil {
		return nil, err
	}

	client, err := s.getS3Client()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	bucket := s.config.S3Bucket
	key := MakeStorageKey(taskID, identity.ID, fileName)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &fileType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	evidence := &models.Evidence{
		TaskID:     taskID,
		UserID:     identity.ID,
		StorageKey: key,
		FileName:   fileName,
		FileType:   fileType,
		FileSize:   int64(len(data)),
	}
	return s.repomanager.Evidences(s.db).Create(ctx, evidence)
}

// List returns the evidence attached to a task, each with a fresh presigned
// download URL. Visibility follows the task itself: assignee or admin.
func (s *EvidenceService) List(ctx context.Context, identity *Identity, taskID int64) ([]*models.Evidence, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(identity, task.AssignedToUserID); err != nil {
		return nil, err
	}

	evidences, err := s.repomanager.Evidences(s.db).ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if len(evidences) == 0 {
		return evidences, nil
	}

	client, err := s.getS3Client()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	presignClient := newS3PresignClient(client)

	bucket := s.config.S3Bucket
	for _, e := range evidences {
		req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &e.StorageKey,
		}, s3.WithPresignExpires(presignValidity))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}
		e.FileURL = req.URL
	}

	return evidences, nil
}
