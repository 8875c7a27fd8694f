package controlplane

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// AWSClient implements Client against the CloudFormation API.
type AWSClient struct {
	cfn *cloudformation.Client
}

var _ Client = (*AWSClient)(nil)

// NewAWS builds an AWSClient using the default credential/config chain.
// An empty region defers to the chain (env, shared config, IMDS).
func NewAWS(ctx context.Context, region string) (*AWSClient, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &AWSClient{cfn: cloudformation.NewFromConfig(cfg)}, nil
}

// NewAWSFromConfig wraps an already-resolved aws.Config. Used by tests and
// callers that manage credentials themselves.
func NewAWSFromConfig(cfg aws.Config) *AWSClient {
	return &AWSClient{cfn: cloudformation.NewFromConfig(cfg)}
}

func (c *AWSClient) Create(ctx context.Context, spec StackSpec) error {
	in := &cloudformation.CreateStackInput{
		StackName:          aws.String(spec.Name),
		Parameters:         toCfnParameters(spec.Parameters),
		Capabilities:       toCfnCapabilities(spec.Capabilities),
		Tags:               toCfnTags(spec.Tags),
		ClientRequestToken: optionalString(spec.Token),
	}
	applyTemplateRef(&in.TemplateBody, &in.TemplateURL, spec.Template)

	_, err := c.cfn.CreateStack(ctx, in)
	return classify(err, "create stack", spec.Name)
}

func (c *AWSClient) Update(ctx context.Context, spec StackSpec) error {
	in := &cloudformation.UpdateStackInput{
		StackName:          aws.String(spec.Name),
		Parameters:         toCfnParameters(spec.Parameters),
		Capabilities:       toCfnCapabilities(spec.Capabilities),
		Tags:               toCfnTags(spec.Tags),
		ClientRequestToken: optionalString(spec.Token),
	}
	applyTemplateRef(&in.TemplateBody, &in.TemplateURL, spec.Template)

	_, err := c.cfn.UpdateStack(ctx, in)
	return classify(err, "update stack", spec.Name)
}

func (c *AWSClient) Delete(ctx context.Context, name, token string) error {
	_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName:          aws.String(name),
		ClientRequestToken: optionalString(token),
	})
	return classify(err, "delete stack", name)
}

func (c *AWSClient) Describe(ctx context.Context, name string) (*Stack, error) {
	out, err := c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(name),
	})
	if err != nil {
		return nil, classify(err, "describe stack", name)
	}
	if len(out.Stacks) == 0 {
		return nil, &NotFoundError{Name: name}
	}

	s := out.Stacks[0]
	outputs := make(map[string]string, len(s.Outputs))
	for _, o := range s.Outputs {
		outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}

	return &Stack{
		Name:         aws.ToString(s.StackName),
		Status:       string(s.StackStatus),
		StatusReason: aws.ToString(s.StackStatusReason),
		CreationTime: aws.ToTime(s.CreationTime),
		Outputs:      outputs,
	}, nil
}

func (c *AWSClient) EventsPage(ctx context.Context, name, pageToken string) (EventPage, error) {
	out, err := c.cfn.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(name),
		NextToken: optionalString(pageToken),
	})
	if err != nil {
		return EventPage{}, classify(err, "describe stack events", name)
	}

	page := EventPage{
		Events:    make([]Event, 0, len(out.StackEvents)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, ev := range out.StackEvents {
		page.Events = append(page.Events, Event{
			ID:           aws.ToString(ev.EventId),
			ResourceType: aws.ToString(ev.ResourceType),
			LogicalID:    aws.ToString(ev.LogicalResourceId),
			Status:       string(ev.ResourceStatus),
			Reason:       aws.ToString(ev.ResourceStatusReason),
			Timestamp:    aws.ToTime(ev.Timestamp),
		})
	}
	return page, nil
}

func (c *AWSClient) StacksPage(ctx context.Context, pageToken string, statusFilter []string) (StackPage, error) {
	filter := make([]cftypes.StackStatus, 0, len(statusFilter))
	for _, s := range statusFilter {
		filter = append(filter, cftypes.StackStatus(s))
	}

	out, err := c.cfn.ListStacks(ctx, &cloudformation.ListStacksInput{
		NextToken:         optionalString(pageToken),
		StackStatusFilter: filter,
	})
	if err != nil {
		return StackPage{}, classify(err, "list stacks", "")
	}

	page := StackPage{
		Stacks:    make([]StackSummary, 0, len(out.StackSummaries)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, s := range out.StackSummaries {
		page.Stacks = append(page.Stacks, StackSummary{
			Name:         aws.ToString(s.StackName),
			Status:       string(s.StackStatus),
			CreationTime: aws.ToTime(s.CreationTime),
		})
	}
	return page, nil
}

func (c *AWSClient) DeclaredParameters(ctx context.Context, tmpl TemplateRef) ([]DeclaredParameter, error) {
	in := &cloudformation.GetTemplateSummaryInput{}
	applyTemplateRef(&in.TemplateBody, &in.TemplateURL, tmpl)

	out, err := c.cfn.GetTemplateSummary(ctx, in)
	if err != nil {
		return nil, classify(err, "get template summary", "")
	}

	declared := make([]DeclaredParameter, 0, len(out.Parameters))
	for _, p := range out.Parameters {
		declared = append(declared, DeclaredParameter{
			Key:     aws.ToString(p.ParameterKey),
			Default: aws.ToString(p.DefaultValue),
		})
	}
	return declared, nil
}

func (c *AWSClient) ValidateTemplate(ctx context.Context, tmpl TemplateRef) error {
	in := &cloudformation.ValidateTemplateInput{}
	applyTemplateRef(&in.TemplateBody, &in.TemplateURL, tmpl)

	_, err := c.cfn.ValidateTemplate(ctx, in)
	return classify(err, "validate template", "")
}

func applyTemplateRef(body, url **string, tmpl TemplateRef) {
	if tmpl.URL != "" {
		*url = aws.String(tmpl.URL)
		return
	}
	if tmpl.Body != "" {
		*body = aws.String(tmpl.Body)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func toCfnParameters(params []Parameter) []cftypes.Parameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]cftypes.Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, cftypes.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		})
	}
	return out
}

func toCfnCapabilities(caps []string) []cftypes.Capability {
	if len(caps) == 0 {
		return nil
	}
	out := make([]cftypes.Capability, 0, len(caps))
	for _, c := range caps {
		out = append(out, cftypes.Capability(c))
	}
	return out
}

func toCfnTags(tags map[string]string) []cftypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]cftypes.Tag, 0, len(tags))
	for _, k := range keys {
		out = append(out, cftypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
