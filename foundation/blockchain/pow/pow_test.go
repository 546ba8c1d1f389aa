package pow_test

import (
	"context"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestFindProof(t *testing.T) {
	type table struct {
		name      string
		lastProof uint64
	}

	tt := []table{
		{name: "genesis", lastProof: 100},
		{name: "zero", lastProof: 0},
		{name: "large", lastProof: 1<<63 + 12345},
	}

	t.Log("Given the need to find a proof for a previous proof.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s proof.", testID, tst.name)
			{
				f := func(t *testing.T) {
					proof, err := pow.FindProof(context.Background(), tst.lastProof, nil)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to find a proof: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to find a proof: %d", success, testID, proof)

					if !pow.ValidProof(tst.lastProof, proof) {
						t.Fatalf("\t%s\tTest %d:\tShould get back a valid proof.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back a valid proof.", success, testID)

					for candidate := uint64(0); candidate < proof; candidate++ {
						if pow.ValidProof(tst.lastProof, candidate) {
							t.Fatalf("\t%s\tTest %d:\tShould get back the first valid proof, %d is smaller.", failed, testID, candidate)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back the first valid proof.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestFindProofCancel(t *testing.T) {
	t.Log("Given the need to stop a proof search.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the context is already cancelled.", testID)
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			// Find a seed whose first solution is beyond the first progress
			// report, which is where cancellation is checked.
			var lastProof uint64
			for {
				proof, err := pow.FindProof(context.Background(), lastProof, nil)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to find a proof: %v", failed, testID, err)
				}
				if proof >= 1<<16 {
					break
				}
				lastProof++
			}

			if _, err := pow.FindProof(ctx, lastProof, nil); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould get an error from a cancelled search.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get an error from a cancelled search.", success, testID)
		}
	}
}
