package agent

import (
	"context"
	"fmt"
	"strconv"

	"github.com/etnz/factorlab"
	"github.com/etnz/factorlab/date"
	"github.com/etnz/factorlab/docs"
	"github.com/etnz/factorlab/renderer"
	"google.golang.org/genai"
)

// NewFacilitator creates the expert in charge of the conversation with the user.
func NewFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user studies how the Fama-French five factors explain the monthly returns of
			their assets, and what to expect from an asset under a given factor scenario.
			Devise a plan of questions to ask to each expert and come up with the best response.
			Always quote figures as given by the experts, do not compute them yourself.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search.
func NewResearcher(model string) *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert in financial markets, aware of the latest news about
		companies, funds and the economy. Ask the Researcher whenever you need recent or
		grounding information, for instance to build a realistic factor scenario.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related to
			companies, markets, funds and the economy. You leverage Google Search to
			ground your assertions in a solid truth.
			`}}},
		},
	}
}

// NewAnalyst creates the expert that fits and projects factor models on ds.
func NewAnalyst(model string, ds *factorlab.Dataset) *Expert {
	lib := Tools(ds)
	return &Expert{
		Name: "Analyst",
		Description: `This is the quantitative Analyst. It fits the Fama-French five factor model
		of the user's assets and projects their monthly excess return under factor scenarios.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a quantitative analyst in charge of the user's factor models.
			Use the available tools to:
			  - list the assets,
			  - display the monthly excess returns of an asset,
			  - fit the five factor model of an asset,
			  - project the excess return of an asset under a factor scenario.

			` + must(docs.GetTopic("model"))}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Tools returns the functions exposing ds to the analyst.
func Tools(ds *factorlab.Dataset) []*Func {
	return []*Func{
		listAssets(ds),
		showReturns(ds),
		fitModel(ds),
		projectScenario(ds),
	}
}

var assetArg = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The name of the asset, as listed by list_assets.",
}

func listAssets(ds *factorlab.Dataset) *Func {
	const name = "list_assets"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "list_assets lists the assets that can be analyzed.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of asset names.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return success(id, name, renderer.AssetsMarkdown(ds.Assets().Columns()))
		},
	}
}

func showReturns(ds *factorlab.Dataset) *Func {
	const name = "show_returns"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "show_returns displays the monthly returns of an asset in excess of the risk-free rate.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"asset": assetArg,
					"years": {
						Type:        genai.TypeString,
						Description: `The years to display, like "2015-2020" or "2021". All years by default.`,
					},
				},
				Required: []string{"asset"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the monthly excess returns, in percent.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			asset, err := stringArg(args, "asset")
			if err != nil {
				return failure(id, name, err)
			}
			req := factorlab.Request{Asset: asset}
			if years, err := stringArg(args, "years"); err == nil && years != "" {
				if req.AssetYears, err = date.ParseYears(years); err != nil {
					return failure(id, name, err)
				}
			}
			res, err := ds.Charts(req)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.SeriesMarkdown(fmt.Sprintf("Excess Returns of %s", asset), res.Returns))
		},
	}
}

func fitModel(ds *factorlab.Dataset) *Func {
	const name = "fit_model"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "fit_model regresses the excess returns of an asset on the five factors.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"asset": assetArg},
				Required:   []string{"asset"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with the coefficients, their standard errors, t and p values, and the R².",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			asset, err := stringArg(args, "asset")
			if err != nil {
				return failure(id, name, err)
			}
			res, err := ds.Analyze(factorlab.Request{Asset: asset})
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.ModelMarkdown(res.Model))
		},
	}
}

// shocks maps project_scenario arguments to factors.
var shocks = []struct{ arg, factor string }{
	{"mkt", factorlab.MktRF},
	{"smb", factorlab.SMB},
	{"hml", factorlab.HML},
	{"rmw", factorlab.RMW},
	{"cma", factorlab.CMA},
}

func projectScenario(ds *factorlab.Dataset) *Func {
	const name = "project_scenario"
	props := map[string]*genai.Schema{
		"asset": assetArg,
		"amount": {
			Type:        genai.TypeNumber,
			Description: "Optional amount invested in the asset, to compute the expected profit or loss.",
		},
		"currency": {
			Type:        genai.TypeString,
			Description: "ISO 4217 currency of the amount, USD by default.",
		},
	}
	for _, s := range shocks {
		props[s.arg] = &genai.Schema{
			Type:        genai.TypeNumber,
			Description: fmt.Sprintf("Monthly return of the %s factor, in percent between -20 and 20. 0 by default.", factorlab.FactorLabel(s.factor)),
		}
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "project_scenario projects the monthly excess return of an asset for a scenario of factor returns.\n\n" + must(docs.GetTopic("scenario")),
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   []string{"asset"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with the scenario and the expected excess return.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			asset, err := stringArg(args, "asset")
			if err != nil {
				return failure(id, name, err)
			}
			percents := make(map[string]float64)
			for _, s := range shocks {
				v, _, err := numberArg(args, s.arg)
				if err != nil {
					return failure(id, name, err)
				}
				percents[s.factor] = v
			}
			scenario, err := factorlab.ScenarioFromPercents(percents)
			if err != nil {
				return failure(id, name, err)
			}
			req := factorlab.Request{Asset: asset, Scenario: scenario}

			amount, hasAmount, err := numberArg(args, "amount")
			if err != nil {
				return failure(id, name, err)
			}
			if hasAmount {
				currency, err := stringArg(args, "currency")
				if err != nil {
					currency = "USD"
				}
				m, err := factorlab.ParseMoney(strconv.FormatFloat(amount, 'f', -1, 64), currency)
				if err != nil {
					return failure(id, name, err)
				}
				req.Amount = &m
			}

			res, err := ds.Analyze(req)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.ProjectionMarkdown(res))
		},
	}
}
