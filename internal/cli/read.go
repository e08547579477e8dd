package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/reading"
	"github.com/ayusman/hastarekha/internal/store"
)

func newReadCmd(o *rootOptions) *cobra.Command {
	var (
		imagePath          string
		age, gender, focus string
		seed               uint64
		save               bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a palm photo",
		Example: "  hastarekha read --image palm.jpg --age 26-35 --gender female --focus career\n" +
			"  hastarekha read --image palm.png --age above60 --gender unspecified --focus wisdom --seed 7 -f text",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := reading.ParseUserContext(age, gender, focus)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			var est palm.LineEstimator
			if cmd.Flags().Changed("seed") {
				est = palm.NewSeededEstimator(seed)
			}

			var st *store.Store
			if save {
				if st, err = o.openStore(); err != nil {
					return err
				}
				defer st.Close()
			}

			a := o.analyzer(st, est)
			defer a.Close()

			res, err := a.NewSession().Analyze(cmd.Context(), app.Input{
				Image:       data,
				ContentType: http.DetectContentType(data),
				Context:     uc,
			})
			if err != nil {
				return err
			}
			return o.printResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Palm photo (JPEG, PNG, GIF or BMP) (required)")
	cmd.Flags().StringVar(&age, "age", "", "Age bracket: under18, 18-25, 26-35, 36-45, 46-60, above60 (required)")
	cmd.Flags().StringVar(&gender, "gender", "unspecified", "Gender: male, female, unspecified")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus area: career, wealth, health, love, social, wisdom, potential (required)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible line qualities")
	cmd.Flags().BoolVar(&save, "save", false, "Store the reading in history")

	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("age")
	cmd.MarkFlagRequired("focus")
	return cmd
}
