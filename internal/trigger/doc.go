// Package trigger provides a client for the Trigger.dev REST API.
// It implements the two read calls a snapshot needs: listing the most recent
// runs and retrieving a single run's full record.
//
// The client authenticates with an environment secret key (tr_dev_..., tr_prod_...),
// passed explicitly to the constructor.
//
// Example usage:
//
//	client, err := trigger.NewClient(secretKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	runs, err := client.ListRuns(ctx, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	run, err := client.RetrieveRun(ctx, runs[0].ID)
package trigger
