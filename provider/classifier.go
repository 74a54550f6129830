package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/sridhareguram/aura/fileutil"
	"github.com/sridhareguram/aura/pipeline"
)

const classifierInstructions = `You are a zero-shot emotion classifier.

You will receive a user message and a list of candidate emotion labels.
Score every candidate label between 0 and 1 for how well it describes the
emotional state expressed in the message. Scores do not need to sum to 1,
but exactly one label should clearly dominate when the emotion is clear.

Return a single JSON object matching the schema. Do not include any other
text, and do not invent labels outside the candidate list.`

type classifyResponse struct {
	Labels []rankedLabel `json:"labels"`
}

type rankedLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

var classifySchema = generateSchema[classifyResponse]()

// Classify scores each candidate label for the text and returns the labels
// ranked best-first.
func (c *Client) Classify(ctx context.Context, text string, labels []string) ([]pipeline.RankedLabel, error) {
	if c.client == nil {
		return nil, errors.New("provider: client is nil")
	}
	if len(labels) == 0 {
		return nil, errors.New("provider: no candidate labels")
	}

	prompt := fmt.Sprintf("Message: %q\n\nCandidate labels: %s", text, strings.Join(labels, ", "))

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "MoodClassification",
			Schema:      classifySchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Ranked emotion labels JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(500),
		Instructions:    openai.String(classifierInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, c.client, params)
	if err != nil {
		return nil, err
	}

	var out classifyResponse
	if err := fileutil.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	// Keep only candidate labels, drop anything the model invented.
	allowed := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		allowed[strings.ToLower(l)] = struct{}{}
	}
	ranked := make([]pipeline.RankedLabel, 0, len(out.Labels))
	for _, rl := range out.Labels {
		label := strings.ToLower(strings.TrimSpace(rl.Label))
		if _, ok := allowed[label]; !ok {
			continue
		}
		ranked = append(ranked, pipeline.RankedLabel{Label: label, Score: rl.Score})
	}
	if len(ranked) == 0 {
		return nil, errors.New("provider: classifier returned no candidate labels")
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked, nil
}
