package scraper

import (
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var resourceTypes = map[string]proto.NetworkResourceType{
	"Image":      proto.NetworkResourceTypeImage,
	"Stylesheet": proto.NetworkResourceTypeStylesheet,
	"Font":       proto.NetworkResourceTypeFont,
	"Media":      proto.NetworkResourceTypeMedia,
	"Script":     proto.NetworkResourceTypeScript,
}

// adHosts are the ad and tracking hosts Sports-Reference pages pull in.
// Subdomains match too.
var adHosts = []string{
	"doubleclick.net",
	"googlesyndication.com",
	"googletagmanager.com",
	"googletagservices.com",
	"google-analytics.com",
	"amazon-adsystem.com",
	"adnxs.com",
	"adsrvr.org",
	"criteo.com",
	"pubmatic.com",
	"rubiconproject.com",
	"openx.net",
	"casalemedia.com",
	"33across.com",
	"sharethrough.com",
	"indexww.com",
	"quantserve.com",
	"scorecardresearch.com",
	"moatads.com",
	"consensu.org",
	"fundingchoicesmessages.google.com",
}

// blockList decides which subresources a page may load. The tables are in
// the HTML document itself, so nothing else is needed to parse a page.
type blockList struct {
	types map[proto.NetworkResourceType]bool
	ads   bool
}

func newBlockList(names []string, ads bool) blockList {
	b := blockList{types: make(map[proto.NetworkResourceType]bool, len(names)), ads: ads}
	for _, n := range names {
		if rt, ok := resourceTypes[n]; ok {
			b.types[rt] = true
		}
	}
	return b
}

func (b blockList) empty() bool {
	return len(b.types) == 0 && !b.ads
}

func (b blockList) blocks(rt proto.NetworkResourceType, rawURL string) bool {
	if b.types[rt] {
		return true
	}
	if !b.ads {
		return false
	}
	u, err := url.Parse(rawURL)
	return err == nil && isAdHost(u.Hostname())
}

func isAdHost(host string) bool {
	host = strings.ToLower(host)
	for _, ad := range adHosts {
		if host == ad || strings.HasSuffix(host, "."+ad) {
			return true
		}
	}
	return false
}

// hijack installs the interceptor on page and returns the running router,
// or nil when nothing is blocked.
func (b blockList) hijack(page *rod.Page) *rod.HijackRouter {
	if b.empty() {
		return nil
	}
	router := page.HijackRequests()
	_ = router.Add("*", "", func(h *rod.Hijack) {
		if b.blocks(h.Request.Type(), h.Request.URL().String()) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
	return router
}
