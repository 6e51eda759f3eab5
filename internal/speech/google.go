package speech

import (
	"context"
	"fmt"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"vidscribe/internal/gcp"
)

// GoogleRecognizer submits jobs to Cloud Speech-to-Text.
type GoogleRecognizer struct {
	client *gspeech.Client
}

// NewGoogleRecognizer dials the Speech-to-Text API.
func NewGoogleRecognizer(ctx context.Context, creds gcp.Credentials) (*GoogleRecognizer, error) {
	client, err := gspeech.NewClient(ctx, gcp.ClientOptions(creds)...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &GoogleRecognizer{client: client}, nil
}

// Submit starts a LongRunningRecognize job.
func (g *GoogleRecognizer) Submit(ctx context.Context, req Request) (Operation, error) {
	pbReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}
	op, err := g.client.LongRunningRecognize(ctx, pbReq)
	if err != nil {
		return nil, err
	}
	return &googleOperation{op: op}, nil
}

// Close releases the underlying client.
func (g *GoogleRecognizer) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func buildRequest(req Request) (*speechpb.LongRunningRecognizeRequest, error) {
	encoding, err := pbEncoding(req.Encoding)
	if err != nil {
		return nil, err
	}
	return &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            int32(req.SampleRateHertz),
			LanguageCode:               req.LanguageCode,
			EnableAutomaticPunctuation: req.AutomaticPunctuation,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: req.URI},
		},
	}, nil
}

func pbEncoding(enc Encoding) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch enc {
	case EncodingMP3, "":
		return speechpb.RecognitionConfig_MP3, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding %q", enc)
	}
}

type googleOperation struct {
	op *gspeech.LongRunningRecognizeOperation
}

func (o *googleOperation) Name() string {
	return o.op.Name()
}

func (o *googleOperation) Poll(ctx context.Context) (Status, error) {
	resp, err := o.op.Poll(ctx)
	if err != nil {
		return Status{}, err
	}
	status := Status{Done: o.op.Done()}
	if meta, err := o.op.Metadata(); err == nil && meta != nil {
		status.ProgressPercent = meta.GetProgressPercent()
	}
	if status.Done {
		status.Result = convertResponse(resp)
	}
	return status, nil
}

func convertResponse(resp *speechpb.LongRunningRecognizeResponse) *Result {
	result := &Result{}
	for _, r := range resp.GetResults() {
		seg := Segment{LanguageCode: r.GetLanguageCode()}
		for _, alt := range r.GetAlternatives() {
			seg.Alternatives = append(seg.Alternatives, Alternative{
				Transcript: alt.GetTranscript(),
				Confidence: alt.GetConfidence(),
			})
		}
		result.Segments = append(result.Segments, seg)
	}
	return result
}
