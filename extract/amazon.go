package extract

import "strings"

// ProductSpecs bundles the field specs applied to one product detail page.
type ProductSpecs struct {
	Title          FieldSpec
	CurrentPrice   FieldSpec
	ReferencePrice FieldSpec
	BuyBoxPrice    FieldSpec
	Availability   FieldSpec
	Prime          FieldSpec
	Seller         FieldSpec
	Images         FieldSpec
	Related        FieldSpec
}

// AmazonSpecs returns the selector fallback chains for Amazon product pages.
// The storefront markup changes often and varies between layouts, so each
// field carries several generations of selectors, most specific first.
func AmazonSpecs() ProductSpecs {
	return ProductSpecs{
		Title: FieldSpec{
			Name: "title",
			Strategies: []Strategy{
				MustCSS("#productTitle"),
				MustCSS("h1.a-size-large"),
			},
		},
		CurrentPrice: FieldSpec{
			Name:            "current_price",
			RequireCurrency: true,
			Strategies: []Strategy{
				MustCSS("span.a-price.a-text-price.a-size-medium.apexPriceToPay span.a-offscreen"),
				MustCSS("span.a-price-whole"),
				MustCSS("span#priceblock_ourprice"),
				MustCSS("span#priceblock_dealprice"),
				MustCSS("span#priceblock_saleprice"),
				MustCSS("span#price_inside_buybox"),
				MustCSS("span.a-price.a-text-price.a-size-base span.a-offscreen"),
				MustCSS(".a-price .a-offscreen"),
				MustCSS("#apex_desktop .a-price .a-offscreen"),
			},
		},
		ReferencePrice: FieldSpec{
			Name:            "reference_price",
			RequireCurrency: true,
			Strategies: []Strategy{
				MustCSS("span.a-price.a-text-price.a-size-base.a-color-secondary span.a-offscreen"),
				MustCSS("span#listPrice"),
				MustCSS(`span[data-a-strike="true"] .a-offscreen`),
				MustCSS("span.a-price.a-text-price span.a-offscreen"),
				MustCSS(".a-price.a-text-price .a-offscreen"),
			},
		},
		BuyBoxPrice: FieldSpec{
			Name:            "buy_box_price",
			RequireCurrency: true,
			Strategies: []Strategy{
				MustCSS("#price_inside_buybox"),
			},
		},
		Availability: FieldSpec{
			Name: "availability",
			Strategies: []Strategy{
				MustCSS("#availability span"),
				MustCSS("#availability .a-color-success"),
				MustCSS("#availability .a-color-state"),
				MustCSS("#availability"),
				MustCSS("#merchant-info"),
			},
		},
		Prime: FieldSpec{
			Name: "prime_eligible",
			Strategies: []Strategy{
				MustCSS(`[data-csa-c-content-id="prime-logo"]`),
				MustCSS(".a-icon-prime"),
				MustCSS(`[aria-label*="Prime"]`),
				MustCSS(`i[aria-label*="Prime"]`),
			},
		},
		Seller: FieldSpec{
			Name: "seller",
			Strategies: []Strategy{
				MustCSS("#merchant-info a"),
				MustCSS("#sellerProfileTriggerId"),
				MustCSS(`[data-csa-c-content-id="merchant-info"] a`),
				MustCSS(`.tabular-buybox-text[tabular-attribute-name="Sold by"] span`),
			},
		},
		Images: FieldSpec{
			Name: "image_urls",
			Strategies: []Strategy{
				MustAttr("#landingImage", "src"),
				MustAttr("#altImages img", "src"),
				MustAttr("#imageBlock img", "src"),
			},
		},
		Related: FieldSpec{
			Name: "related_urls",
			Strategies: []Strategy{
				MustAttr("#purchase-sims-feature li a", "href"),
				MustAttr("#sims-consolidated-2_feature_div li a", "href"),
			},
			Filter: func(href string) bool {
				return strings.Contains(href, "/dp/")
			},
		},
	}
}
