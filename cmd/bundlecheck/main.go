// bundlecheck loads an artifact bundle and runs the startup consistency
// checks without serving. Intended as a deploy-time preflight.
package main

import (
	"flag"
	"fmt"
	"os"

	"chronopulse/artifact"
)

func main() {
	var paths artifact.Paths
	flag.StringVar(&paths.Model, "model", "artifacts/model.json", "path to the trained model")
	flag.StringVar(&paths.Scaler, "scaler", "artifacts/scaler.json", "path to the fitted scaler")
	flag.StringVar(&paths.FeatureNames, "features", "artifacts/feature_names.json", "path to the ordered feature list")
	flag.StringVar(&paths.Metadata, "metadata", "artifacts/model_info.json", "path to the model metadata")
	flag.Parse()

	bundle, err := artifact.Load(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bundle check failed: %v\n", err)
		os.Exit(1)
	}

	meta := bundle.Metadata()
	fmt.Printf("model:    %s (%s)\n", meta.ModelName, meta.ModelType)
	fmt.Printf("accuracy: %.4f\n", meta.Accuracy)
	fmt.Printf("classes:  %v\n", meta.Classes)
	fmt.Printf("features: %d\n", len(bundle.FeatureNames()))
	fmt.Println("bundle OK")
}
