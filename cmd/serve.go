package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/barline/boundary"
	"github.com/jsphweid/barline/chord"
	"github.com/jsphweid/barline/constants"
	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/score"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the splitter over HTTP",
	Long:  `Serves POST /split, /fit and /boundaries on $PORT.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr := fmt.Sprintf(":%d", constants.GetPort())
		log.Printf("listening on %v", addr)
		log.Fatal(http.ListenAndServe(addr, NewRouter()))
	},
}

// SplitRequestBody carries a main bar document and either barline positions
// or a bar count.
type SplitRequestBody struct {
	Document score.Document `json:"document"`
	At       []int          `json:"at,omitempty"`
	Bars     int            `json:"bars,omitempty"`
	Min      int            `json:"min,omitempty"`
}

type SplitResponse struct {
	ID         uuid.UUID          `json:"id"`
	Boundaries []int              `json:"boundaries"`
	Result     score.BarsDocument `json:"result"`
}

func (b SplitRequestBody) options() SplitOptions {
	min := b.Min
	if min < 1 {
		min = constants.GetMinSubEventDuration()
	}
	return SplitOptions{At: b.At, Bars: b.Bars, Min: min}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not encode response: %v", err)
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, "could not decode request body")
	}
	return nil
}

func HandleSplit(w http.ResponseWriter, r *http.Request) {
	var input SplitRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := splitDocument(input.Document, input.options())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logRefits(fmt.Sprintf("request %q", input.Document.Name), res.refits, input.options().Min)
	writeJSON(w, SplitResponse{
		ID:         uuid.New(),
		Boundaries: res.boundaries,
		Result:     score.FromBars(input.Document.Name, res.bars),
	})
}

func HandleBoundaries(w http.ResponseWriter, r *http.Request) {
	var input SplitRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	policy, err := input.options().Policy()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	main, err := input.Document.MainBar(model.NewIDAllocator(0))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := boundary.Get(main, policy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, model.BoundariesResponse{Boundaries: res})
}

func HandleFit(w http.ResponseWriter, r *http.Request) {
	var input model.FitRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if input.Min < 1 {
		input.Min = constants.GetMinSubEventDuration()
	}
	f, err := chord.FitProfile(input.Weights, input.Total, input.Min)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, model.FitResponse{Durations: f.Durations, Kept: f.Kept, Degraded: f.Degraded})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/split", HandleSplit).Methods("POST")
	router.HandleFunc("/fit", HandleFit).Methods("POST")
	router.HandleFunc("/boundaries", HandleBoundaries).Methods("POST")
	return cors.Default().Handler(router)
}
