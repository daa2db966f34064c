package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/pkg/constants"
	"github.com/akeren/commit-waitlist/pkg/utils"
	"github.com/akeren/commit-waitlist/pkg/waitlistclient"
)

// joinEndpoint prefers WAITLIST_ENDPOINT, else the submission path under the site URL.
func joinEndpoint() string {
	if endpoint := utils.GetEnvTrimmed("WAITLIST_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return config.NewSiteConfig().BaseURL + constants.WaitlistPath
}

// runJoin returns the process exit code: 0 only when the form reached success.
func runJoin(ctx context.Context, endpoint, email string, client *http.Client, out io.Writer) int {
	form := waitlistclient.NewForm(endpoint, client)
	form.SetEmail(email)

	state := form.Submit(ctx)
	if state.Status == waitlistclient.StatusSuccess {
		fmt.Fprintf(out, "status=%s email=%s\n", state.Status, state.Email)
		return 0
	}

	fmt.Fprintf(out, "status=%s error=%q\n", state.Status, state.Error)
	return 1
}
