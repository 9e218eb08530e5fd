package cloud

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func f(v float64) *float64 { return &v }

type fakeDynamo struct {
	puts []*dynamodb.PutItemInput
	err  error
}

func (d *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	d.puts = append(d.puts, in)
	return &dynamodb.PutItemOutput{}, d.err
}

func TestArchivePutsItem(t *testing.T) {
	fake := &fakeDynamo{}
	a := &TelemetryArchive{svc: fake, table: "DamStatusHistory"}
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	h := domain.DamStatusHistory{ID: "h1"}
	h.DamID = "d1"
	h.CurrentWaterLevel = f(42.5)
	h.LevelUnit = "m"
	h.Source = "sensor"
	h.PowerStatus = "ok"
	h.CreatedAt = at
	h.GateStatus = domain.Gates{
		{GateNumber: 1, Status: "open", PercentageOpen: 40},
		{GateNumber: 2, Status: "closed"},
	}

	require.NoError(t, a.Archive(context.Background(), h))
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "DamStatusHistory", aws.ToString(fake.puts[0].TableName))

	var got ArchivedStatus
	require.NoError(t, attributevalue.UnmarshalMap(fake.puts[0].Item, &got))
	assert.Equal(t, "d1", got.DamID)
	assert.Equal(t, at.UnixMilli(), got.CreatedAt)
	assert.Equal(t, 1, got.OpenGates)
	require.NotNil(t, got.CurrentWaterLevel)
	assert.InDelta(t, 42.5, *got.CurrentWaterLevel, 1e-9)
	assert.Nil(t, got.MaxLevel)
	_, hasMax := fake.puts[0].Item["maxLevel"]
	assert.False(t, hasMax)
}

func TestArchiveWrapsError(t *testing.T) {
	a := &TelemetryArchive{svc: &fakeDynamo{err: errors.New("throttled")}, table: "t"}
	err := a.Archive(context.Background(), domain.DamStatusHistory{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

type fakeS3 struct {
	puts []*s3.PutObjectInput
	err  error
}

func (s *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.puts = append(s.puts, in)
	return &s3.PutObjectOutput{}, s.err
}

type fakePresign struct{ expires time.Duration }

func (p *fakePresign) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	p.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://signed/" + aws.ToString(in.Key)}, nil
}

func TestUploadReportReturnsPresignedURL(t *testing.T) {
	store := &fakeS3{}
	presign := &fakePresign{}
	c := &S3Client{svc: store, presign: presign, bucket: "reports", region: "ap-south-1"}

	url, err := c.UploadReport(context.Background(), "reports/d1/x.json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "https://signed/reports/d1/x.json", url)
	assert.Equal(t, time.Hour, presign.expires)
	require.Len(t, store.puts, 1)
	assert.Equal(t, "application/json", aws.ToString(store.puts[0].ContentType))
	assert.Contains(t, store.puts[0].Metadata, "uploaded-at")
}

func TestUploadReportStopsOnPutError(t *testing.T) {
	presign := &fakePresign{}
	c := &S3Client{svc: &fakeS3{err: errors.New("denied")}, presign: presign, bucket: "b"}
	_, err := c.UploadReport(context.Background(), "k", nil)
	require.Error(t, err)
	assert.Zero(t, presign.expires)
}

func TestUploadProfileImageKey(t *testing.T) {
	store := &fakeS3{}
	c := &S3Client{svc: store, presign: &fakePresign{}, bucket: "imgs", region: "ap-south-1"}

	url, err := c.UploadProfileImage(context.Background(), "u1", "Me.PNG", "", []byte{1})
	require.NoError(t, err)
	require.Len(t, store.puts, 1)
	key := aws.ToString(store.puts[0].Key)
	assert.True(t, strings.HasPrefix(key, "profiles/u1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "application/octet-stream", aws.ToString(store.puts[0].ContentType))
	assert.Equal(t, "https://imgs.s3.ap-south-1.amazonaws.com/"+key, url)
}

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (s *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.in = in
	return &sns.PublishOutput{MessageId: aws.String("m1")}, s.err
}

func newSNS(fake *fakeSNS) *SNSClient {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &SNSClient{svc: fake, topicArn: "arn:topic", now: func() time.Time { return at }}
}

func TestSendFloodAlert(t *testing.T) {
	fake := &fakeSNS{}
	dam := domain.Dam{ID: "d1", Name: "Koyna", RiverName: "Koyna", StateName: "Maharashtra"}
	s := domain.Safety{FloodRiskLevel: domain.FloodRiskRed}
	s.EmergencyContact.Val = domain.EmergencyContact{AuthorityName: "WRD", Phone: "100"}

	require.NoError(t, newSNS(fake).SendFloodAlert(context.Background(), dam, s))
	assert.Equal(t, "arn:topic", aws.ToString(fake.in.TopicArn))
	assert.Equal(t, "Flood Risk RED: Koyna", aws.ToString(fake.in.Subject))
	msg := aws.ToString(fake.in.Message)
	assert.Contains(t, msg, "Flood risk raised to Red")
	assert.Contains(t, msg, "Maharashtra")
	assert.Contains(t, msg, "WRD 100")
	assert.Contains(t, msg, "2024-03-01T10:00:00Z")
}

func TestSendLevelAlert(t *testing.T) {
	fake := &fakeSNS{}
	require.NoError(t, newSNS(fake).SendLevelAlert(context.Background(), "d1", 101.256, 100, "m"))
	msg := aws.ToString(fake.in.Message)
	assert.Contains(t, msg, "Level: 101.26 m")
	assert.Contains(t, msg, "Maximum: 100.00 m")
}

func TestSendAlertWrapsError(t *testing.T) {
	err := newSNS(&fakeSNS{err: errors.New("boom")}).SendAlert(context.Background(), "s", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish to SNS")
}
