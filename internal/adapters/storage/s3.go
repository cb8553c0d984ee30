package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"participationletters/internal/domain"
)

// S3Config holds configuration for an S3-compatible object store.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint (MinIO, Supabase storage S3 gateway, ...).
	Endpoint     string
	UsePathStyle bool
	// PublicBaseURL is the prefix for public object URLs, e.g.
	// https://<project>.supabase.co/storage/v1/object/public. Empty means AWS virtual-hosted URLs.
	PublicBaseURL      string
	InsecureSkipVerify bool
}

// s3API is the subset of *s3.Client used by the store.
type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client        s3API
	logger        *slog.Logger
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3Store creates an ArtifactStore backed by S3 with static credentials.
func NewS3Store(logger *slog.Logger, config S3Config) (domain.ArtifactStore, error) {
	if config.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if config.Region == "" {
		return nil, errors.New("s3 region is required")
	}
	if config.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for S3. Use only in development.")
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	awsCfg := aws.Config{
		Region: config.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		),
		HTTPClient: httpClient,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		o.UsePathStyle = config.UsePathStyle
	})
	return newS3Store(client, logger, config), nil
}

func newS3Store(client s3API, logger *slog.Logger, config S3Config) *s3Store {
	return &s3Store{
		client:        client,
		logger:        logger,
		bucket:        config.Bucket,
		region:        config.Region,
		publicBaseURL: strings.TrimSuffix(config.PublicBaseURL, "/"),
	}
}

func (s *s3Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates name when it is missing and (re)applies public read
// access on every call, so a bucket left private by an earlier failed call is
// repaired rather than reported as ready.
func (s *s3Store) EnsureBucket(ctx context.Context, name string) (bool, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return false, fmt.Errorf("list buckets: %w", err)
	}
	exists := false
	for _, b := range out.Buckets {
		if aws.ToString(b.Name) == name {
			exists = true
			break
		}
	}

	if !exists {
		input := &s3.CreateBucketInput{Bucket: aws.String(name)}
		// us-east-1 rejects an explicit location constraint.
		if s.region != "" && s.region != "us-east-1" {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(s.region),
			}
		}
		if _, err := s.client.CreateBucket(ctx, input); err != nil {
			return false, fmt.Errorf("create bucket %s: %w", name, err)
		}
		s.logger.InfoContext(ctx, "bucket created", "bucket", name)
	}

	if err := s.makePublic(ctx, name); err != nil {
		return !exists, err
	}
	return !exists, nil
}

// makePublic lifts Block Public Access for bucket policies and installs the
// public-read policy. Gateways without the public access block API are tolerated.
func (s *s3Store) makePublic(ctx context.Context, name string) error {
	_, err := s.client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(name),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(false),
			RestrictPublicBuckets: aws.Bool(false),
		},
	})
	if err != nil {
		if !isNotImplemented(err) {
			return fmt.Errorf("allow public policy on bucket %s: %w", name, err)
		}
		s.logger.DebugContext(ctx, "public access block not supported by store", "bucket", name)
	}

	policy, err := publicReadPolicy(name)
	if err != nil {
		return err
	}
	if _, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(name),
		Policy: aws.String(policy),
	}); err != nil {
		return fmt.Errorf("make bucket %s public: %w", name, err)
	}
	return nil
}

func isNotImplemented(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NotImplemented", "XNotImplemented":
		return true
	}
	return false
}

// Upload stores body at path in the configured bucket. Repeated uploads to a path follow the store's overwrite rules.
func (s *s3Store) Upload(ctx context.Context, path string, body []byte, contentType string) error {
	if strings.TrimSpace(path) == "" || strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: object path %q", domain.ErrInvalidInput, path)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// PublicURL derives the public object URL without a network round-trip.
func (s *s3Store) PublicURL(path string) string {
	key := escapePath(path)
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + url.PathEscape(s.bucket) + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

type policyStatement struct {
	Sid       string `json:"Sid"`
	Effect    string `json:"Effect"`
	Principal string `json:"Principal"`
	Action    string `json:"Action"`
	Resource  string `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

func publicReadPolicy(bucket string) (string, error) {
	b, err := json.Marshal(bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Sid:       "PublicReadGetObject",
			Effect:    "Allow",
			Principal: "*",
			Action:    "s3:GetObject",
			Resource:  "arn:aws:s3:::" + bucket + "/*",
		}},
	})
	if err != nil {
		return "", fmt.Errorf("encode bucket policy: %w", err)
	}
	return string(b), nil
}
