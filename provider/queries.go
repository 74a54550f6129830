package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/sridhareguram/aura/curator"
	"github.com/sridhareguram/aura/fileutil"
)

const queryPlannerInstructions = `You generate search queries for an emotional-support companion.

You will receive a user message and the user's detected mood. Produce:
- exactly 3 video search queries suited to the message and mood
- exactly 3 news search queries suited to the message and mood
- emotional: true when the message calls for emotionally supportive content
  rather than factual information

Queries must be short plain-text search strings. Return a single JSON object
matching the schema and nothing else.`

type queryPlanResponse struct {
	Video     []string `json:"video"`
	News      []string `json:"news"`
	Emotional bool     `json:"emotional"`
}

var queryPlanSchema = generateSchema[queryPlanResponse]()

// PlanQueries asks the model for refined video/news search queries and an
// emotional/factual classification of the message.
func (c *Client) PlanQueries(ctx context.Context, userInput, mood string) (curator.QueryPlan, error) {
	if c.client == nil {
		return curator.QueryPlan{}, errors.New("provider: client is nil")
	}

	prompt := fmt.Sprintf("User message: %q\nDetected mood: %s", userInput, mood)

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SearchQueryPlan",
			Schema:      queryPlanSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Search query plan JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(queryPlannerInstructions),
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
		return curator.QueryPlan{}, err
	}

	var out queryPlanResponse
	if err := fileutil.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return curator.QueryPlan{}, fmt.Errorf("unmarshal query plan: %w", err)
	}

	plan := curator.QueryPlan{
		Video:     capQueries(out.Video, userInput),
		News:      capQueries(out.News, userInput),
		Emotional: out.Emotional,
	}
	return plan, nil
}

func capQueries(queries []string, fallback string) []string {
	if len(queries) == 0 {
		return []string{fallback}
	}
	if len(queries) > 3 {
		queries = queries[:3]
	}
	return queries
}
