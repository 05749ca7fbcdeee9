package webshield

// defaultListName is the identifier of the built-in filter list.
const defaultListName = "Basic AdBlock"

// defaultFilterText is a small conservative built-in filter list used when
// no external lists are configured.  The selectors are deliberately narrow
// to avoid hiding legitimate content on video and media sites.
const defaultFilterText = `||doubleclick.net/gampad/^
||googleadservices.com/pagead/^
||googlesyndication.com/pagead/^
||amazon-adsystem.com/aax2/^
||facebook.com/tr^
||twitter.com/i/analytics^
##.ad:not(.youtube-ad)
##.ads:not(.content-ads)
##.advertisement:not(.site-content)
##.advert:not(.article-advert)
##div[id*="google_ads"]:not([id*="youtube"])
##div[class*="banner"]:not(.site-banner)
`
