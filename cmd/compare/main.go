package main

import (
	"context"
	"encoding/json"
	"flag"
	"fleet-route-service/internal/adapters/distance"
	"fleet-route-service/internal/adapters/repositories"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
)

// compare runs the routing algorithms over a scenario file and prints a
// side-by-side summary, without needing the HTTP server or a database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	scenarioPath := flag.String("scenario", "data/scenarios/ljubljana.json", "orders and vehicles JSON file")
	enginePath := flag.String("engine", config.Get("ENGINE_CONFIG", ""), "optional engine YAML file")
	algorithms := flag.String("algorithms", "", "comma-separated algorithm names (default: all)")
	osrmURL := flag.String("osrm", config.Get("OSRM_URL", ""), "OSRM base URL for road distances")
	asJSON := flag.Bool("json", false, "print full results as JSON")
	flag.Parse()

	engine, err := config.LoadEngine(*enginePath)
	if err != nil {
		log.Fatal(err)
	}

	scenario, err := repositories.LoadScenarioJSON(*scenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	in := services.Input{Orders: scenario.Orders, Vehicles: scenario.Vehicles}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *osrmURL != "" {
		provider, err := distance.NewOSRMMatrixProvider(*osrmURL, nil)
		if err != nil {
			log.Fatal(err)
		}

		points := make([]domain.Coordinates, 0, 1+len(in.Orders))
		points = append(points, engine.Depot)
		for _, o := range in.Orders {
			points = append(points, o.Location)
		}
		if in.Matrix, err = provider.BuildMatrix(ctx, points); err != nil {
			log.Fatal(err)
		}
	}

	results, err := services.Compare(ctx, in, engine, parseNames(*algorithms)...)
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := printTable(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
}

func parseNames(raw string) []services.AlgorithmName {
	var names []services.AlgorithmName
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, services.AlgorithmName(part))
		}
	}
	return names
}

func printTable(out io.Writer, results []services.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "algorithm\tdistance km\tassigned\tunassigned\troutes\ton time\tlate\tavg late min\tutil %\tms\t")
	for _, r := range results {
		s := r.Stats
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\t%d\t\n",
			r.Algorithm, s.TotalDistanceKm, s.AssignedOrders, s.UnassignedOrders, s.VehiclesUsed,
			s.OnTimeDeliveries, s.LateDeliveries, s.AvgLateness, s.AvgUtilization, r.Elapsed.Milliseconds())
	}
	return tw.Flush()
}
