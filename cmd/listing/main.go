package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"listinggen/internal/config"
	"listinggen/internal/model"
	"listinggen/internal/repository"
	"listinggen/internal/service"
	"listinggen/internal/terminal"
	"listinggen/internal/utils"

	"github.com/spf13/pflag"
)

var Version = "dev"

type flagValues struct {
	propertyType  string
	stories       string
	squareFootage string
	garage        string
	bedrooms      string
	bathrooms     string
	amenities     string
}

func main() {
	var fv flagValues
	pflag.StringVarP(&fv.propertyType, "type", "t", string(model.PropertyHouse), "Property type (house, apartment or condo)")
	pflag.StringVarP(&fv.stories, "stories", "s", "", "Number of stories")
	pflag.StringVar(&fv.squareFootage, "sqft", "", "Square footage")
	pflag.StringVarP(&fv.garage, "garage", "g", model.DefaultGarageCount, "Garage size in cars")
	pflag.StringVarP(&fv.bedrooms, "bedrooms", "b", "", "Number of bedrooms")
	pflag.StringVar(&fv.bathrooms, "bathrooms", "", "Number of bathrooms")
	pflag.StringVarP(&fv.amenities, "amenities", "a", "", "Comma separated amenities (pool, gas cooking, patio, shed, sprinklers, solar panels)")
	configPath := pflag.StringP("config", "c", "", "Path to a YAML config file")
	dryRun := pflag.Bool("dry-run", false, "Print the prompt without calling the provider")
	noForm := pflag.Bool("no-form", false, "Fail instead of prompting for missing values")
	version := pflag.BoolP("version", "v", false, "Print version and exit")
	help := pflag.BoolP("help", "h", false, "Show help information")

	pflag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}
	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Printf("Error: Could not load config: %v\n", err)
		os.Exit(1)
	}

	form, unknown, err := formFromFlags(fv)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, u := range unknown {
		fmt.Printf("Warning: ignoring unknown amenity %q\n", u)
	}

	if missing := form.MissingFields(); len(missing) > 0 {
		if *noForm {
			fmt.Printf("Error: %s Missing: %s\n", model.MessageMissingFields, strings.Join(missing, ", "))
			os.Exit(1)
		}
		values := terminal.ValuesFromForm(form)
		if err := terminal.BuildListingForm(values).Run(); err != nil {
			fmt.Printf("Error: Could not run form: %v\n", err)
			os.Exit(1)
		}
		form = values.FormInput()
	}

	composer := service.NewPromptComposer(cfg.Prompt.CollapseWhitespace)

	if *dryRun {
		prompt, err := composer.Compose(form)
		if err != nil {
			fmt.Println(terminal.RenderError(validationStatus(err)))
			os.Exit(1)
		}
		fmt.Println(prompt)
		return
	}

	var audit repository.GenerationLogger
	if cfg.AuditEnabled() {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			fmt.Printf("Warning: audit log disabled: %v\n", err)
		} else {
			defer repo.Close()
			audit = repo
		}
	}

	client := service.NewOpenAIClient(&cfg.OpenAI)
	session := service.NewSession(composer, client, audit)
	session.SetForm(form)

	fmt.Println(terminal.RenderSummary(form, cfg.OpenAI.APIBase, client.Model()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spinner := terminal.NewSpinner(os.Stdout, "Generating listing")
	spinner.Start()
	listing, err := session.Submit(ctx)
	spinner.Stop()
	session.Wait()

	if err != nil {
		fmt.Println(terminal.RenderError(session.Status()))
		if errors.Is(err, service.ErrProviderDisabled) {
			fmt.Println("Set OPENAI_API_KEY to enable listing generation")
		}
		os.Exit(1)
	}

	fmt.Println(terminal.RenderListing(listing))
}

// formFromFlags builds a form snapshot from command line values
func formFromFlags(fv flagValues) (model.FormInput, []string, error) {
	pt, err := model.ParsePropertyType(fv.propertyType)
	if err != nil {
		return model.FormInput{}, nil, err
	}

	keys, unknown := utils.NormalizeAmenityList(fv.amenities)

	form := model.NewFormInput().
		WithPropertyType(pt).
		WithStories(strings.TrimSpace(fv.stories)).
		WithSquareFootage(strings.TrimSpace(fv.squareFootage)).
		WithGarageCount(strings.TrimSpace(fv.garage)).
		WithBedrooms(strings.TrimSpace(fv.bedrooms)).
		WithBathrooms(strings.TrimSpace(fv.bathrooms))
	form.Amenities = model.AmenitiesFromKeys(keys)

	return form, unknown, nil
}

func validationStatus(err error) model.Status {
	status := model.IdleStatus()
	var mf *service.MissingFieldsError
	if errors.As(err, &mf) {
		status.Error = &model.StatusError{
			Kind:    model.ErrorKindValidation,
			Message: model.MessageMissingFields,
			Fields:  mf.Fields,
		}
	}
	return status
}

func printUsage() {
	fmt.Println("Usage: listing [flags]")
	fmt.Println("\nOptions:")
	pflag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  listing -s 2 --sqft 1800 -b 3 --bathrooms 2 -g 2 -a pool,patio")
	fmt.Println("  listing --type condo --dry-run")
}
