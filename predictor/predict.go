package predictor

import (
	"context"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// Request holds validated inputs of one clone-address prediction.
type Request struct {
	Implementation common.Address
	Factory        common.Address
	Parent         common.Address
	Salt           Salt
}

// Prediction is the outcome of a prediction along with the intermediate
// hashes, which are handy when debugging a mismatch against the chain.
type Prediction struct {
	Address      common.Address
	FinalSalt    common.Hash
	BytecodeHash common.Hash
}

// Hex returns the predicted address in EIP-55 form.
func (p Prediction) Hex() string {
	return ChecksumAddress(p.Address)
}

// ParseRequest validates textual inputs field by field and stops at the first
// invalid one.
func ParseRequest(implementation, factory, parent, salt string) (Request, error) {
	var (
		req Request
		err error
	)
	if req.Implementation, err = ParseAddress(FieldImplementation, implementation); err != nil {
		return Request{}, err
	}
	if req.Factory, err = ParseAddress(FieldFactory, factory); err != nil {
		return Request{}, err
	}
	if req.Parent, err = ParseAddress(FieldParent, parent); err != nil {
		return Request{}, err
	}
	if req.Salt, err = ParseSalt(salt); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Predict runs the full pipeline: final salt and bytecode hash feed the
// CREATE2 formula.
func Predict(req Request) Prediction {
	finalSalt := DeriveSalt(req.Parent, req.Salt)
	_, codeHash := BuildBytecode(req.Implementation)
	return Prediction{
		Address:      ComputeAddress(req.Factory, finalSalt, codeHash),
		FinalSalt:    finalSalt,
		BytecodeHash: codeHash,
	}
}

// PredictDeterministicAddress predicts the checksummed clone address from
// textual inputs.
func PredictDeterministicAddress(implementation, factory, parent, salt string) (string, error) {
	req, err := ParseRequest(implementation, factory, parent, salt)
	if err != nil {
		return "", err
	}
	return Predict(req).Hex(), nil
}

// PredictBatch predicts every request using up to workers goroutines. Results
// keep the order of reqs. A non-positive workers uses GOMAXPROCS.
func PredictBatch(ctx context.Context, reqs []Request, workers int) ([]Prediction, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Prediction, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Predict(reqs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
