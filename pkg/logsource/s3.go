package logsource

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 API the reader uses. *s3.Client
// implements it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config describes how to reach the bucket.
type S3Config struct {
	Region          string
	Endpoint        string
	PathStyle       bool
	Anonymous       bool
	AccessKeyID     string
	SecretAccessKey string
}

// IsS3 reports whether location is an s3:// URI.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", errors.Newf(errors.ErrLogSource, "not an s3 URI: %s", uri).
			WithDetail("uri", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", errors.Newf(errors.ErrLogSource, "s3 URI must name a bucket and an object key: %s", uri).
			WithDetail("uri", uri)
	}
	return bucket, key, nil
}

// NewS3Client builds a client from cfg. Without explicit keys the standard
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN variables
// are used.
func NewS3Client(cfg S3Config) *s3.Client {
	awsCfg := aws.Config{Region: cfg.Region}
	if cfg.Anonymous {
		awsCfg.Credentials = aws.AnonymousCredentials{}
	} else {
		awsCfg.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				creds := aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
					Source:          "semtparser",
				}
				if creds.AccessKeyID == "" {
					creds.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
					creds.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
					creds.SessionToken = os.Getenv("AWS_SESSION_TOKEN")
					creds.Source = "environment"
				}
				if creds.AccessKeyID == "" {
					return aws.Credentials{}, errors.New(errors.ErrLogSource, "no S3 credentials configured")
				}
				return creds, nil
			},
		))
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
}

func getObject(ctx context.Context, client ObjectGetter, bucket, key string) (io.ReadCloser, error) {
	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLogRead, "cannot fetch s3://%s/%s", bucket, key).
			WithDetail("bucket", bucket).
			WithDetail("key", key)
	}
	return obj.Body, nil
}
