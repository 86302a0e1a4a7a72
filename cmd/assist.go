package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/factorlab/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `assist [<prompt>...]

  Start an interactive session with the AI assistant. The assistant can list
  the assets, fit their model and project scenarios.

  The Gemini API key is read from GEMINI_API_KEY or GOOGLE_API_KEY, the model
  from FFM_GEMINI_MODEL.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client", err)
	}

	model := config.GeminiModel
	a := agent.New(stdout, os.Stdin, model,
		agent.NewAnalyst(model, ds),
		agent.NewResearcher(model),
	)
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail("Agent failed", err)
	}
	return subcommands.ExitSuccess
}
