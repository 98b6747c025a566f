package onchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"clone-predictor/predictor"
)

// CheckResult pairs the offline prediction with the factory's answer.
type CheckResult struct {
	Request predictor.Request
	Offline predictor.Prediction
	Onchain common.Address
}

// Match reports whether both sides agree.
func (r *CheckResult) Match() bool {
	return r.Offline.Address == r.Onchain
}

// CrossCheck predicts the clone address for parent/salt offline, using the
// implementation the factory reports, and compares it with the factory's own
// predictCloneAddress. A disagreement returns the result together with
// ErrPredictionMismatch.
func CrossCheck(ctx context.Context, f *Factory, parent common.Address, salt predictor.Salt) (*CheckResult, error) {
	impl, err := f.ImplementationAddress(ctx)
	if err != nil {
		return nil, err
	}
	req := predictor.Request{
		Implementation: impl,
		Factory:        f.Address(),
		Parent:         parent,
		Salt:           salt,
	}
	res := &CheckResult{Request: req, Offline: predictor.Predict(req)}

	if res.Onchain, err = f.PredictCloneAddress(ctx, parent, salt); err != nil {
		return nil, err
	}
	if !res.Match() {
		log.Warn("Clone address mismatch", "factory", req.Factory, "implementation", impl,
			"parent", parent, "salt", salt, "offline", res.Offline.Hex(), "onchain", res.Onchain.Hex(),
			"finalSalt", res.Offline.FinalSalt, "bytecodeHash", res.Offline.BytecodeHash)
		return res, fmt.Errorf("%w: offline %s, onchain %s", ErrPredictionMismatch, res.Offline.Hex(), res.Onchain.Hex())
	}
	return res, nil
}
