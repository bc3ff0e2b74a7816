package engine

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/leaklens/leaklens/internal/aggregate"
	"github.com/leaklens/leaklens/internal/model"
)

// foodDeliveryRe identifies delivery platforms within the broader dining
// category; habitual delivery spend is a classic leak.
var foodDeliveryRe = regexp.MustCompile(`UBER\s?EATS|DOORDASH|MENULOG|DELIVEROO|GRUBHUB|POSTMATES|SEAMLESS|JUST EAT|SKIP THE DISHES|INSTACART|GOPUFF`)

// microLeakMaxAvg and microLeakMinCount define a micro-leak: small
// habitual purchases that add up.
const (
	microLeakMaxAvg   = model.Cents(1000)
	microLeakMinCount = 10
)

// detectLeaks flags avoidable recurring spend: confident subscriptions,
// fee charges, food delivery habits and micro purchases. Returns the
// capped leak list plus the uncapped monthly total.
func (e *Engine) detectLeaks(txns []model.CategorizedTransaction, groups []model.RecurringGroup, subs []model.Subscription) ([]model.Leak, model.Cents) {
	_, _, days := aggregate.DateRange(txns)
	months := days / 30
	if months < 1 {
		months = 1
	}

	leaks := make([]model.Leak, 0)
	var monthlyTotal model.Cents

	subscribed := make(map[string]bool, len(subs))
	for _, s := range subs {
		subscribed[s.Merchant] = true
		leaks = append(leaks, model.Leak{
			Kind:        model.LeakSubscription,
			Merchant:    s.Merchant,
			MonthlyCost: s.MonthlyCost,
			YearlyCost:  s.AnnualCost,
			Explanation: s.Reason,
		})
		monthlyTotal += s.MonthlyCost
	}

	for _, g := range groups {
		if subscribed[g.MerchantKey] || len(g.Transactions) == 0 {
			continue
		}

		var total model.Cents
		fees, dining := false, false
		for _, t := range g.Transactions {
			total += t.Amount.Abs()
			switch t.Category {
			case model.CategoryFees:
				fees = true
			case model.CategoryDining:
				dining = true
			}
		}
		monthly := model.Cents(int64(total) / int64(months))
		count := len(g.Transactions)

		switch {
		case fees:
			leaks = append(leaks, model.Leak{
				Kind:        model.LeakFees,
				Merchant:    g.MerchantKey,
				MonthlyCost: monthly,
				YearlyCost:  monthly * 12,
				Explanation: fmt.Sprintf("bank/service fees: %d charges totaling %s", count, total),
			})
			monthlyTotal += monthly
		case dining && foodDeliveryRe.MatchString(g.MerchantKey):
			leaks = append(leaks, model.Leak{
				Kind:        model.LeakFoodDelivery,
				Merchant:    g.MerchantKey,
				MonthlyCost: monthly,
				YearlyCost:  monthly * 12,
				Explanation: fmt.Sprintf("food delivery: %d orders totaling %s", count, total),
			})
			monthlyTotal += monthly
		case count >= microLeakMinCount && model.CentsFromFloat(total.Float()/float64(count)) < microLeakMaxAvg:
			leaks = append(leaks, model.Leak{
				Kind:        model.LeakMicro,
				Merchant:    g.MerchantKey,
				MonthlyCost: monthly,
				YearlyCost:  monthly * 12,
				Explanation: fmt.Sprintf("small frequent purchases: %d under %s each", count, microLeakMaxAvg),
			})
			monthlyTotal += monthly
		}
	}

	sort.SliceStable(leaks, func(i, j int) bool {
		if leaks[i].MonthlyCost != leaks[j].MonthlyCost {
			return leaks[i].MonthlyCost > leaks[j].MonthlyCost
		}
		return leaks[i].Merchant < leaks[j].Merchant
	})

	if len(leaks) > e.cfg.MaxLeaks {
		leaks = leaks[:e.cfg.MaxLeaks]
	}
	return leaks, monthlyTotal
}
