package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/logger"
)

// SDKSource reads inventory through the AWS SDK instead of the aws CLI.
type SDKSource struct {
	profile    string
	loadConfig func(ctx context.Context, profile, region string) (aws.Config, error)
	newClient  func(cfg aws.Config) ec2.DescribeInstancesAPIClient
	log        logger.Logger
}

// NewSDKSource creates an SDK-backed source. An empty profile uses the
// default credential chain.
func NewSDKSource(profile string) *SDKSource {
	return &SDKSource{
		profile:    profile,
		loadConfig: loadAWSConfig,
		newClient: func(cfg aws.Config) ec2.DescribeInstancesAPIClient {
			return ec2.NewFromConfig(cfg)
		},
		log: logger.NewEnvLogger("[aws-sdk]"),
	}
}

func loadAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// DefaultRegion returns the region resolved by the SDK's config chain
// (AWS_REGION, shared config), or "" if none.
func (s *SDKSource) DefaultRegion(ctx context.Context) string {
	cfg, err := s.loadConfig(ctx, s.profile, "")
	if err != nil {
		s.log.Debug("ignoring SDK config error: %v", err)
		return ""
	}
	return cfg.Region
}

// Fetch lists every instance in region, keeping reservation grouping.
func (s *SDKSource) Fetch(ctx context.Context, region string) (*Inventory, error) {
	cfg, err := s.loadConfig(ctx, s.profile, region)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInventory,
			"Failed to load AWS config",
			"Check your credentials, or pass --profile.")
	}

	client := s.newClient(cfg)
	inv := &Inventory{}

	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrInventory,
				fmt.Sprintf("Failed to describe EC2 instances in %s", region),
				"Check that your credentials allow ec2:DescribeInstances.")
		}

		for _, reservation := range output.Reservations {
			r := Reservation{Instances: make([]RawInstance, 0, len(reservation.Instances))}
			for _, instance := range reservation.Instances {
				r.Instances = append(r.Instances, convertEC2Instance(instance))
			}
			inv.Reservations = append(inv.Reservations, r)
		}
	}

	s.log.Debug("fetched %d instance records in %s", inv.Count(), region)
	return inv, nil
}

// convertEC2Instance maps an SDK instance onto the CLI JSON shape.
func convertEC2Instance(instance ec2types.Instance) RawInstance {
	raw := RawInstance{
		InstanceID:      aws.ToString(instance.InstanceId),
		PlatformDetails: aws.ToString(instance.PlatformDetails),
		InstanceType:    string(instance.InstanceType),
		KeyName:         aws.ToString(instance.KeyName),
	}

	if instance.State != nil {
		raw.State = State{
			Code: int(aws.ToInt32(instance.State.Code)),
			Name: string(instance.State.Name),
		}
	}

	if instance.PublicIpAddress != nil {
		ip := aws.ToString(instance.PublicIpAddress)
		raw.PublicIPAddress = &ip
	}

	for _, tag := range instance.Tags {
		raw.Tags = append(raw.Tags, Tag{
			Key:   aws.ToString(tag.Key),
			Value: aws.ToString(tag.Value),
		})
	}

	return raw
}
