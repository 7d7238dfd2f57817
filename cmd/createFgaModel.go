// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/openfga/go-sdk/client"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/canonical/autocrm/internal/authorization"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/openfga"
	"github.com/canonical/autocrm/internal/tracing"
)

const (
	StoreName = "autocrm"

	// keys read back by serve through envFrom
	storeIDKey = "OPENFGA_STORE_ID"
	modelIDKey = "OPENFGA_AUTHORIZATION_MODEL_ID"
)

type fgaModelOutput struct {
	StoreID      string `json:"store_id" yaml:"store_id"`
	ModelID      string `json:"model_id" yaml:"model_id"`
	StoreCreated bool   `json:"store_created" yaml:"store_created"`
	ConfigMap    string `json:"configmap,omitempty" yaml:"configmap,omitempty"`
}

var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Write the companies and tickets authorization model to OpenFGA",
	Long: `Creates the "autocrm" OpenFGA store unless one is given, then writes the
authorization model relating companies, agents, customers and tickets.

The resulting store and model IDs can be written to a Kubernetes ConfigMap
as OPENFGA_STORE_ID and OPENFGA_AUTHORIZATION_MODEL_ID for serve to pick up.
With --print-dsl the model is printed and nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := authorization.NewAuthorizationModelProvider("v0")

		if printDSL, _ := cmd.Flags().GetBool("print-dsl"); printDSL {
			fmt.Fprint(cmd.OutOrStdout(), model.DSL())
			return nil
		}

		apiURL := flagOrEnv(cmd, "fga-api-url", "OPENFGA_API_URL")
		apiToken := flagOrEnv(cmd, "fga-api-token", "OPENFGA_API_TOKEN")
		storeID := flagOrEnv(cmd, "fga-store-id", storeIDKey)
		verbose, _ := cmd.Flags().GetBool("verbose")
		configMap, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfig, _ := cmd.Flags().GetString("kubeconfig")

		if apiURL == "" {
			return errors.New("an OpenFGA API URL is required, pass --fga-api-url or set OPENFGA_API_URL")
		}

		fgaClient, err := newFGAClient(apiURL, apiToken, storeID, verbose)
		if err != nil {
			return err
		}

		out, err := writeModel(cmd.Context(), fgaClient, model, storeID)
		if err != nil {
			return err
		}

		if configMap != "" {
			if err := storeModelIDs(cmd.Context(), kubeconfig, configMap, out.StoreID, out.ModelID); err != nil {
				return fmt.Errorf("failed to update configmap: %w", err)
			}
			out.ConfigMap = configMap
		}

		return render(cmd, out, func(w io.Writer) {
			if out.StoreCreated {
				fmt.Fprintf(w, "Created store: %s\n", out.StoreID)
			}
			fmt.Fprintf(w, "Created model: %s\n", out.ModelID)
			if out.ConfigMap != "" {
				fmt.Fprintf(w, "Updated ConfigMap: %s\n", out.ConfigMap)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "OpenFGA API URL, defaults to $OPENFGA_API_URL")
	createFgaModelCmd.Flags().String("fga-api-token", "", "OpenFGA API token, defaults to $OPENFGA_API_TOKEN")
	createFgaModelCmd.Flags().String("fga-store-id", "", "Existing store to write the model to, defaults to $OPENFGA_STORE_ID; a new store is created when empty")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Log OpenFGA requests")
	createFgaModelCmd.Flags().Bool("print-dsl", false, "Print the model DSL and exit")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "ConfigMap receiving the store and model IDs, as namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to a kubeconfig, defaults to the in-cluster config")
}

func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}

func newFGAClient(apiURL, apiToken, storeID string, verbose bool) (*openfga.Client, error) {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid OpenFGA API URL %q", apiURL)
	}

	logger := logging.NewNoopLogger()

	return openfga.NewClient(&openfga.Config{
		ApiScheme: u.Scheme,
		ApiHost:   u.Host,
		StoreID:   storeID,
		ApiToken:  apiToken,
		Debug:     verbose,
		Tracer:    tracing.NewNoopTracer(),
		Monitor:   monitoring.NewNoopMonitor("", logger),
		Logger:    logger,
	}), nil
}

func writeModel(ctx context.Context, c *openfga.Client, model *authorization.AuthorizationModelProvider, storeID string) (fgaModelOutput, error) {
	out := fgaModelOutput{StoreID: storeID}

	if out.StoreID == "" {
		id, err := c.CreateStore(ctx, StoreName)
		if err != nil {
			return out, fmt.Errorf("failed to create store: %w", err)
		}
		c.SetStoreID(ctx, id)
		out.StoreID, out.StoreCreated = id, true
	}

	m := model.GetModel()
	id, err := c.WriteModel(ctx, &client.ClientWriteAuthorizationModelRequest{
		TypeDefinitions: m.TypeDefinitions,
		SchemaVersion:   m.SchemaVersion,
		Conditions:      m.Conditions,
	})
	if err != nil {
		return out, fmt.Errorf("failed to write model: %w", err)
	}
	out.ModelID = id

	return out, nil
}

func kubeRESTConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfig)
	}

	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}

	// outside a cluster, fall back to the usual kubeconfig lookup
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
}

// storeModelIDs creates or updates the namespace/name ConfigMap with the
// store and model IDs, leaving its other keys alone.
func storeModelIDs(ctx context.Context, kubeconfig, resource, storeID, modelID string) error {
	namespace, name, ok := strings.Cut(resource, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid configmap resource %q, expected namespace/name", resource)
	}

	config, err := kubeRESTConfig(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	configMaps := clientset.CoreV1().ConfigMaps(namespace)
	data := map[string]string{storeIDKey: storeID, modelIDKey: modelID}

	cm, err := configMaps.Get(ctx, name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
			Data:       data,
		}
		if _, err := configMaps.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create configmap %s: %w", resource, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get configmap %s: %w", resource, err)
	}

	if cm.Data == nil {
		cm.Data = make(map[string]string, len(data))
	}
	for k, v := range data {
		cm.Data[k] = v
	}

	if _, err := configMaps.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update configmap %s: %w", resource, err)
	}

	return nil
}
