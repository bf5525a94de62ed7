package genereport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"go.uber.org/zap"
)

// Default configuration values, matching the deployed report pipeline.
const (
	DefaultRegion       = "eu-west-2"
	DefaultQuery        = "SELECT gene, reference, riskallele, maf, lifestylefactor, nutrienteffects, geneeffects, condition FROM gene_report"
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = 10 * time.Minute
)

// Config holds config needed to initialize the client.
type Config struct {
	Region          string
	AccessKeyID     string // optional: default credentials chain when empty
	SecretAccessKey string
	SessionToken    string
	Database        string
	OutputLocation  string // S3 URI where Athena writes result objects
	QueryString     string
	Workgroup       string
	PollInterval    time.Duration
	PollTimeout     time.Duration
	Logger          *zap.Logger
}

// athenaAPI is the slice of the Athena service client this package uses.
type athenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

// Client runs the report query against Athena.
type Client struct {
	api athenaAPI
	cfg Config
	log *zap.Logger
}

// NewClient initializes the client with config and default timeouts.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Database == "" || cfg.OutputLocation == "" {
		return nil, fmt.Errorf("database and output location are required")
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.QueryString == "" {
		cfg.QueryString = DefaultQuery
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var awsCfg aws.Config
	var err error
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				cfg.SessionToken,
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		api: athena.NewFromConfig(awsCfg),
		cfg: cfg,
		log: log,
	}, nil
}

// Run executes the full report workflow: submit the query, wait for it to
// complete, then fetch and decode every result page.
func (c *Client) Run(ctx context.Context) ([]ReportLine, error) {
	queryID, err := c.Submit(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.WaitForCompletion(ctx, queryID); err != nil {
		return nil, err
	}
	return c.FetchReport(ctx, queryID)
}
